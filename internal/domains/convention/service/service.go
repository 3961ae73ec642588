package service

import (
	"context"
	"errors"
	"fmt"

	"solireserve/config"
	"solireserve/infras/metrics"
	"solireserve/infras/otel"
	"solireserve/internal/domains/convention/model"
	"solireserve/internal/domains/convention/model/dto"
	"solireserve/internal/domains/convention/repository"
	"solireserve/internal/domains/convention/tariff"
	hotelModel "solireserve/internal/domains/hotel/model"
	hotelRepo "solireserve/internal/domains/hotel/repository"
	operatorModel "solireserve/internal/domains/operator/model"
	operatorRepo "solireserve/internal/domains/operator/repository"
	"solireserve/shared"
	"solireserve/shared/cache"
	"solireserve/shared/constant"
	gDto "solireserve/shared/dto"
	"solireserve/shared/failure"
	"solireserve/shared/timezone"

	"github.com/rs/zerolog/log"
)

const cacheGetConvention = "convention:get"

const (
	msgNotApplicable     = "this convention is not active for the requested date; using standard rate"
	msgInvalidTariffBase = "standard price must be greater than zero to derive a reduction"
)

type Convention interface {
	Create(ctx context.Context, req dto.CreateConventionRequest) (dto.ConventionResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetConventionsResponse, error)
	Get(ctx context.Context, id string) (dto.ConventionResponse, error)
	Update(ctx context.Context, req dto.UpdateConventionRequest, id string) (dto.ConventionResponse, error)
	SyncPrice(ctx context.Context, req dto.SyncPriceRequest, id string) (dto.ConventionResponse, error)
	SetStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (dto.ConventionResponse, error)
	Quote(ctx context.Context, req dto.QuoteRequest, id string) (dto.QuoteResponse, error)
}

type serviceImpl struct {
	repo      repository.Convention
	hotels    hotelRepo.Hotel
	operators operatorRepo.Operator
	cfg       *config.Config
	cache     cache.RedisCache
	metrics   *metrics.Metrics
	otel      otel.Otel
}

func New(
	repo repository.Convention,
	hotels hotelRepo.Hotel,
	operators operatorRepo.Operator,
	cfg *config.Config,
	cache cache.RedisCache,
	metrics *metrics.Metrics,
	otel otel.Otel,
) Convention {
	return &serviceImpl{
		repo:      repo,
		hotels:    hotels,
		operators: operators,
		cfg:       cfg,
		cache:     cache,
		metrics:   metrics,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateConventionRequest) (res dto.ConventionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Convention.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.operators.Exist(ctx, shared.FilterByID(req.OperatorID, operatorModel.FieldID, operatorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check operator existence")

		return res, fmt.Errorf("failed to check operator existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound("operator not found") // nolint:wrapcheck
	}

	hotel, err := s.hotels.Get(ctx, shared.FilterByID(req.HotelID, hotelModel.FieldID, hotelModel.TableName),
		hotelModel.FieldID, hotelModel.FieldName)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return res, failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	conv, err := req.ToModel(user, hotel.Name)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	field, value := req.DrivingField()

	conv, err = tariff.SyncPriceAndReduction(conv, field, value)
	if err != nil {
		return res, tariffFailure(err)
	}

	if err = tariff.Validate(conv); err != nil {
		return res, tariffFailure(err)
	}

	if err = s.repo.Insert(ctx, conv); err != nil {
		log.Error().Err(err).Msg("failed to create convention")

		return res, fmt.Errorf("failed to create convention: %w", err)
	}

	res.FromModel(conv)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetConventionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Convention.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count conventions")

		return res, fmt.Errorf("failed to count conventions: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get conventions")

		return res, fmt.Errorf("failed to get conventions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ConventionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Convention.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	conv, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(conv)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateConventionRequest, id string) (res dto.ConventionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Convention.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	conv, err := s.loadForWrite(ctx, id, req.Version)
	if err != nil {
		return res, err
	}

	fields, err := req.Apply(&conv)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if len(fields) == 0 {
		return res, failure.BadRequestFromString("nothing to update") // nolint:wrapcheck
	}

	if err = tariff.Validate(conv); err != nil {
		return res, tariffFailure(err)
	}

	conv, err = s.save(ctx, conv, fields, req.Version)
	if err != nil {
		return res, err
	}

	res.FromModel(conv)

	return res, nil
}

func (s *serviceImpl) SyncPrice(ctx context.Context, req dto.SyncPriceRequest, id string) (res dto.ConventionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Convention.SyncPrice")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	conv, err := s.loadForWrite(ctx, id, req.Version)
	if err != nil {
		return res, err
	}

	conv, err = tariff.SyncPriceAndReduction(conv, req.Field, req.Value)
	if err != nil {
		return res, tariffFailure(err)
	}

	fields := map[string]any{
		model.FieldStandardPrice:   conv.StandardPrice,
		model.FieldNegotiatedPrice: conv.NegotiatedPrice,
		model.FieldReduction:       conv.Reduction,
	}

	conv, err = s.save(ctx, conv, fields, req.Version)
	if err != nil {
		return res, err
	}

	res.FromModel(conv)

	return res, nil
}

func (s *serviceImpl) SetStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (res dto.ConventionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Convention.SetStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	conv, err := s.loadForWrite(ctx, id, req.Version)
	if err != nil {
		return res, err
	}

	conv.Status = req.Status

	conv, err = s.save(ctx, conv, map[string]any{model.FieldStatus: req.Status}, req.Version)
	if err != nil {
		return res, err
	}

	res.FromModel(conv)

	return res, nil
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest, id string) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Convention.Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	month, ok := model.ParseMonth(req.Month)
	if !ok {
		return res, failure.BadRequestFromString(fmt.Sprintf("unknown month %q", req.Month)) // nolint:wrapcheck
	}

	at := timezone.Now()

	if req.Date != nil {
		at, err = timezone.Parse(constant.DayFormat, *req.Date)
		if err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	conv, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	quote, err := tariff.ComputeEffectivePrice(conv, tariff.StayContext{
		Month:     month,
		Axis:      req.Axis,
		Headcount: req.Headcount,
		At:        at,
	})
	if err != nil {
		if errors.Is(err, tariff.ErrConventionNotApplicable) {
			s.metrics.ConventionFallbacksTotal.WithLabelValues("not_applicable").Inc()
		}

		return res, tariffFailure(err)
	}

	s.metrics.QuotesTotal.WithLabelValues(string(quote.Source), string(quote.Axis)).Inc()
	scope.SetAttributes(map[string]any{
		constant.OtelUnitPriceAttributeKey:   quote.UnitPrice,
		constant.OtelPriceSourceAttributeKey: string(quote.Source),
	})

	res.FromQuote(conv, quote)

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Convention, error) {
	var conv model.Convention

	cacheKey := shared.BuildCacheKey(cacheGetConvention, id)

	if err := s.cache.Get(ctx, cacheKey, &conv); err == nil {
		return conv, nil
	}

	conv, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get convention")

		return conv, fmt.Errorf("failed to get convention: %w", err)
	}

	if conv.ID == constant.Empty {
		return conv, failure.NotFound("convention not found") // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, conv, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save convention to cache")
		}
	}()

	return conv, nil
}

// loadForWrite reads the convention from the write pool, never the cache, and refuses a base
// whose version differs from the one the client edited.
func (s *serviceImpl) loadForWrite(ctx context.Context, id string, version int) (model.Convention, error) {
	conv, err := s.repo.GetPrimary(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get convention")

		return conv, fmt.Errorf("failed to get convention: %w", err)
	}

	if conv.ID == constant.Empty {
		return conv, failure.NotFound("convention not found") // nolint:wrapcheck
	}

	if conv.Version != version {
		return conv, failure.StaleVersionError
	}

	return conv, nil
}

// save writes fields when the stored row still has version and returns conv at the next version.
func (s *serviceImpl) save(ctx context.Context, conv model.Convention, fields map[string]any, version int) (model.Convention, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	fields[constant.FieldModifiedAt] = now
	fields[constant.FieldModifiedBy] = user

	affected, err := s.repo.UpdateVersioned(ctx, fields, shared.FilterByID(conv.ID, model.FieldID, model.TableName), version)
	if err != nil {
		log.Error().Err(err).Msg("failed to update convention")

		return conv, fmt.Errorf("failed to update convention: %w", err)
	}

	if affected == 0 {
		return conv, failure.StaleVersionError
	}

	conv.Version = version + 1
	conv.ModifiedAt = now
	conv.ModifiedBy = user

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetConvention, conv.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete convention from cache")
		}
	}()

	return conv, nil
}

func tariffFailure(err error) error {
	switch {
	case errors.Is(err, tariff.ErrConventionNotApplicable):
		return failure.Unprocessable(msgNotApplicable) // nolint:wrapcheck
	case errors.Is(err, tariff.ErrInvalidTariffBase):
		return failure.Unprocessable(msgInvalidTariffBase) // nolint:wrapcheck
	default:
		return failure.BadRequest(err) // nolint:wrapcheck
	}
}
