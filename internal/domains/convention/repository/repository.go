package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"solireserve/infras/otel"
	"solireserve/infras/postgres"
	"solireserve/internal/domains/convention/model"
	gDto "solireserve/shared/dto"
	gRepo "solireserve/shared/repository"
)

type Convention interface {
	Insert(ctx context.Context, model model.Convention) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Convention, error)
	// GetPrimary reads the write pool; used before a versioned update.
	GetPrimary(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Convention, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Convention, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	// UpdateVersioned returns the number of rows changed; zero means a stale version.
	UpdateVersioned(ctx context.Context, mod map[string]any, filter gDto.FilterGroup, version int) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Convention]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Convention {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Convention](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
