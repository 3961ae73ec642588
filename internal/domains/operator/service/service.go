package service

import (
	"context"
	"fmt"

	"solireserve/infras/otel"
	"solireserve/internal/domains/operator/model"
	"solireserve/internal/domains/operator/model/dto"
	"solireserve/internal/domains/operator/repository"
	"solireserve/shared"
	"solireserve/shared/constant"
	gDto "solireserve/shared/dto"
	"solireserve/shared/failure"

	"github.com/rs/zerolog/log"
)

type Operator interface {
	Create(ctx context.Context, req dto.CreateOperatorRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOperatorsResponse, error)
	Get(ctx context.Context, id string) (dto.OperatorResponse, error)
	Update(ctx context.Context, req dto.UpdateOperatorRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.Operator
	otel otel.Otel
}

func New(repo repository.Operator, otel otel.Otel) Operator {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOperatorRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Operator.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return failure.Conflict("an operator with this email already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create operator")

		return fmt.Errorf("failed to create operator: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOperatorsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Operator.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count operators")

		return res, fmt.Errorf("failed to count operators: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get operators")

		return res, fmt.Errorf("failed to get operators: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OperatorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Operator.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	operator, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get operator")

		return res, fmt.Errorf("failed to get operator: %w", err)
	}

	if operator.ID == constant.Empty {
		return res, failure.NotFound("operator not found") // nolint:wrapcheck
	}

	res.FromModel(operator)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateOperatorRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Operator.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check operator existence")

		return fmt.Errorf("failed to check operator existence: %w", err)
	}

	if !exist {
		return failure.NotFound("operator not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update operator")

		return fmt.Errorf("failed to update operator: %w", err)
	}

	return nil
}

// Delete removes an operator that has no convention or reservation yet; otherwise deactivate it.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Operator.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if operator exists")

		return fmt.Errorf("failed to check if operator exists: %w", err)
	}

	if !exist {
		return failure.NotFound("operator not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("operator is referenced by conventions or reservations, deactivate it instead") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete operator")

		return fmt.Errorf("failed to delete operator: %w", err)
	}

	return nil
}
