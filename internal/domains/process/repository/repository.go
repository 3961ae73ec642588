package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"solireserve/infras/otel"
	"solireserve/infras/postgres"
	"solireserve/internal/domains/process/model"
	gDto "solireserve/shared/dto"
	gRepo "solireserve/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Process interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Process) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Process, error)
	// GetPrimary reads the write pool; used before a versioned update.
	GetPrimary(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Process, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Process, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) error
	UpdateVersioned(ctx context.Context, mod map[string]any, filter gDto.FilterGroup, version int) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Process]
	db   *postgres.Connection
	otel otel.Otel
}

// New keys processes by reservation, one process per reservation.
func New(db *postgres.Connection, otel otel.Otel) Process {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Process](model.EntityName, model.TableName, model.FieldReservationID, db, otel),
		db:         db,
		otel:       otel,
	}
}
