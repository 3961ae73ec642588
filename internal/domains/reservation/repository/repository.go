package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"solireserve/infras/otel"
	"solireserve/infras/postgres"
	processModel "solireserve/internal/domains/process/model"
	processRepo "solireserve/internal/domains/process/repository"
	"solireserve/internal/domains/reservation/model"
	"solireserve/shared/constant"
	gDto "solireserve/shared/dto"
	gRepo "solireserve/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Reservation interface {
	// InsertWithProcess stores the reservation and its process in one transaction.
	InsertWithProcess(ctx context.Context, reservation model.Reservation, process processModel.Process) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	processes processRepo.Process
	db        *postgres.Connection
	otel      otel.Otel
}

func New(db *postgres.Connection, processes processRepo.Process, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		processes:  processes,
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) InsertWithProcess(ctx context.Context, reservation model.Reservation, process processModel.Process) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.InsertWithProcess")
	defer scope.End()

	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := r.InsertTx(ctx, tx, reservation); err != nil {
			return err //nolint:wrapcheck
		}

		return r.processes.InsertTx(ctx, tx, process) //nolint:wrapcheck
	})
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to insert reservation with process: %w", err)
	}

	return nil
}
