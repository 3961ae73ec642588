package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"solireserve/infras/otel"
	"solireserve/infras/postgres"
	"solireserve/internal/domains/room/model"
	"solireserve/shared/constant"
	gDto "solireserve/shared/dto"
	gRepo "solireserve/shared/repository"
)

// Room reads rooms together with the name and city of their hotel.
type Room interface {
	Insert(ctx context.Context, room model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, fields map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// NumberTaken reports whether a room of hotelID other than exceptID already uses number.
	NumberTaken(ctx context.Context, hotelID, number, exceptID string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) NumberTaken(ctx context.Context, hotelID, number, exceptID string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.NumberTaken")
	defer scope.End()

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filter.AddEqual(model.TableName, model.FieldHotelID, hotelID)
	filter.AddEqual(model.TableName, model.FieldNumber, number)

	if exceptID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Table:    model.TableName,
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    exceptID,
		})
	}

	taken, err := r.Exist(ctx, filter)
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check room number: %w", err)
	}

	return taken, nil
}
