package service

import (
	"context"
	"errors"
	"fmt"

	"solireserve/config"
	"solireserve/infras/metrics"
	"solireserve/infras/otel"
	convModel "solireserve/internal/domains/convention/model"
	convRepo "solireserve/internal/domains/convention/repository"
	"solireserve/internal/domains/convention/tariff"
	operatorModel "solireserve/internal/domains/operator/model"
	operatorRepo "solireserve/internal/domains/operator/repository"
	"solireserve/internal/domains/process/lifecycle"
	"solireserve/internal/domains/reservation/model"
	"solireserve/internal/domains/reservation/model/dto"
	"solireserve/internal/domains/reservation/repository"
	roomModel "solireserve/internal/domains/room/model"
	roomRepo "solireserve/internal/domains/room/repository"
	"solireserve/shared"
	"solireserve/shared/cache"
	"solireserve/shared/constant"
	gDto "solireserve/shared/dto"
	"solireserve/shared/failure"
	"solireserve/shared/logger"
	"solireserve/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
)

const (
	fallbackNoConvention  = "no_convention"
	fallbackNotApplicable = "not_applicable"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
}

type serviceImpl struct {
	repo        repository.Reservation
	rooms       roomRepo.Room
	operators   operatorRepo.Operator
	conventions convRepo.Convention
	lifecycle   *lifecycle.Lifecycle
	cfg         *config.Config
	cache       cache.RedisCache
	metrics     *metrics.Metrics
	otel        otel.Otel
}

func New(
	repo repository.Reservation,
	rooms roomRepo.Room,
	operators operatorRepo.Operator,
	conventions convRepo.Convention,
	lifecycle *lifecycle.Lifecycle,
	cfg *config.Config,
	cache cache.RedisCache,
	metrics *metrics.Metrics,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:        repo,
		rooms:       rooms,
		operators:   operators,
		conventions: conventions,
		lifecycle:   lifecycle,
		cfg:         cfg,
		cache:       cache,
		metrics:     metrics,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	arrival, departure, nights, err := req.Stay()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if nights < 1 {
		return res, failure.BadRequestFromString("date_depart must be after date_arrivee") // nolint:wrapcheck
	}

	room, err := s.rooms.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !room.Active {
		return res, failure.Unprocessable("room is not available for reservations") // nolint:wrapcheck
	}

	if req.Guests > room.Capacity {
		return res, failure.Unprocessable(fmt.Sprintf("room holds at most %d guests", room.Capacity)) // nolint:wrapcheck
	}

	exist, err := s.operators.Exist(ctx, shared.FilterByID(req.OperatorID, operatorModel.FieldID, operatorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check operator existence")

		return res, fmt.Errorf("failed to check operator existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound("operator not found") // nolint:wrapcheck
	}

	reservation := req.ToModel(user, room.HotelID, arrival, departure, nights)
	if reservation.Axis == constant.Empty {
		reservation.Axis = s.defaultAxis()
	}

	if err = s.price(ctx, &reservation, room); err != nil {
		return res, err
	}

	process, err := s.lifecycle.Initiate(lifecycle.Reservation{
		ID:       reservation.ID,
		Nights:   reservation.Nights,
		Price:    reservation.Price,
		Priority: req.Priority,
	}, timezone.Now())
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	process.Version = 1
	process.Metadata = reservation.Metadata

	if err = s.repo.InsertWithProcess(ctx, reservation, process); err != nil {
		logger.Ctx(ctx).Error().Err(err).Str("room_id", reservation.RoomID).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateLists(c)
		shared.InvalidateCaches(c, s.cache, constant.CacheKeyReportSavings)
		shared.InvalidateCaches(c, s.cache, constant.CacheKeyReportProcesses)
	}()

	res.FromModel(reservation)

	return res, nil
}

// price fills the pricing columns from the newest applicable convention of the operator
// for the hotel and room type, or from the room standard price when none applies.
func (s *serviceImpl) price(ctx context.Context, reservation *model.Reservation, room roomModel.Room) error {
	reservation.StandardPrice = room.StandardPrice
	reservation.Price = room.StandardPrice
	reservation.Savings = decimal.Zero

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filter.AddEqual(convModel.TableName, convModel.FieldOperatorID, reservation.OperatorID)
	filter.AddEqual(convModel.TableName, convModel.FieldHotelID, room.HotelID)
	filter.AddEqual(convModel.TableName, convModel.FieldRoomType, string(room.RoomType))
	filter.AddEqual(convModel.TableName, convModel.FieldStatus, string(convModel.StatusActive))

	conventions, err := s.conventions.GetAll(ctx, gDto.QueryParams{
		SortBy:  convModel.FieldStartDate,
		SortDir: gDto.SortDirDesc,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get conventions")

		return fmt.Errorf("failed to get conventions: %w", err)
	}

	if len(conventions) == 0 {
		s.metrics.ConventionFallbacksTotal.WithLabelValues(fallbackNoConvention).Inc()
		logger.Ctx(ctx).Info().
			Str("operator_id", reservation.OperatorID).
			Str("hotel_id", reservation.HotelID).
			Msg("no active convention, pricing at standard rate")

		return nil
	}

	stay := tariff.StayContext{
		Month:     convModel.MonthOf(reservation.ArrivalDate),
		Axis:      tariff.Axis(reservation.Axis),
		Headcount: reservation.Guests,
		At:        timezone.Now(),
	}

	for _, conv := range conventions {
		quote, err := tariff.ComputeEffectivePrice(conv, stay)
		if errors.Is(err, tariff.ErrConventionNotApplicable) {
			continue
		}

		if err != nil {
			return failure.BadRequest(err) // nolint:wrapcheck
		}

		convID := conv.ID
		reservation.ConventionID = &convID
		reservation.StandardPrice = conv.StandardPrice
		reservation.Price = quote.TotalForStay
		reservation.Savings = perNightSavings(quote, conv.StandardPrice).Mul(decimal.NewFromInt(int64(reservation.Nights)))

		s.metrics.QuotesTotal.WithLabelValues(string(quote.Source), string(quote.Axis)).Inc()

		return nil
	}

	s.metrics.ConventionFallbacksTotal.WithLabelValues(fallbackNotApplicable).Inc()
	logger.Ctx(ctx).Info().
		Str("operator_id", reservation.OperatorID).
		Str("hotel_id", reservation.HotelID).
		Msg("convention not applicable, pricing at standard rate")

	return nil
}

// perNightSavings is the engine's savings for a per-room quote. A per-person quote prices
// the whole party, so the party total is compared with the convention's room rate.
func perNightSavings(quote tariff.Quote, standard decimal.Decimal) decimal.Decimal {
	if quote.Axis != tariff.AxisPerPerson {
		return quote.Savings
	}

	saved := standard.Sub(quote.TotalForStay)
	if saved.IsNegative() {
		return decimal.Zero
	}

	return saved
}

func (s *serviceImpl) defaultAxis() string {
	if axis := tariff.Axis(s.cfg.Tariff.DefaultAxis); axis.IsValid() {
		return string(axis)
	}

	return string(tariff.AxisPerRoom)
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	reservation, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldStatus)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if !reservation.Status.CanMoveTo(req.Status) {
		return failure.Conflict(fmt.Sprintf("reservation cannot move from %s to %s", reservation.Status, req.Status)) // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, filter); err != nil {
		log.Error().Err(err).Msg("failed to update reservation status")

		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation cache")
		}

		s.invalidateLists(c)
	}()

	return nil
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllReservation)
	shared.InvalidateCaches(ctx, s.cache, cacheCountReservation)
}
