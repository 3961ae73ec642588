package reservation

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"solireserve/infras/otel"
	"solireserve/internal/domains/reservation/model"
	"solireserve/internal/domains/reservation/model/dto"
	"solireserve/internal/domains/reservation/service"
	"solireserve/shared/constant"
	gDto "solireserve/shared/dto"
	"solireserve/shared/failure"
	"solireserve/shared/timezone"
	"solireserve/shared/validator"
	"solireserve/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	paramArrivalFrom = "arrivee_du"
	paramArrivalTo   = "arrivee_au"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Get("/mine", handler.GetMyReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Patch("/{id}/status", handler.UpdateStatus)
	})
}

// CreateReservation books a room and opens its process.
// @Summary Create a reservation
// @Description Prices the stay from the operator's convention for the hotel and room type, or the room standard price when none applies.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Reservation"
// @Success 201 {object} response.Data[dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	var req dto.CreateReservationRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetReservations lists reservations.
// @Summary Get all reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param hotel_id query string false "Filter by hotel"
// @Param operator_id query string false "Filter by operator"
// @Param statut query string false "Filter by status, comma separated" example(confirmee,en_cours)
// @Param arrivee_du query string false "Arrival on or after (YYYY-MM-DD)"
// @Param arrivee_au query string false "Arrival on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetReservationsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	filterGroup, err := listFilter(r)
	if err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyReservations lists the reservations created by the caller.
// @Summary Get my reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param statut query string false "Filter by status, comma separated" example(confirmee,en_cours)
// @Param arrivee_du query string false "Arrival on or after (YYYY-MM-DD)"
// @Param arrivee_au query string false "Arrival on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetReservationsResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	filterGroup, err := listFilter(r)
	if err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	filterGroup.AddEqual(model.TableName, model.FieldCreatedBy, userID)

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetReservationByID returns one reservation with its stay total.
// @Summary Get a reservation by ID
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateStatus moves a reservation forward.
// @Summary Update reservation status
// @Description Only confirmee to en_cours to terminee is allowed.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.UpdateStatusRequest true "Status"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservationStatus")
	defer scope.End()

	var req dto.UpdateStatusRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update reservation status")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "reservation status updated")
}

// listFilter reads hotel_id, operator_id, statut (comma separated) and the arrival window
// arrivee_du / arrivee_au (YYYY-MM-DD, inclusive).
func listFilter(r *http.Request) (gDto.FilterGroup, error) {
	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.AddEqual(model.TableName, model.FieldHotelID, query.Get(model.FieldHotelID))
	filterGroup.AddEqual(model.TableName, model.FieldOperatorID, query.Get(model.FieldOperatorID))
	filterGroup.AddIn(model.TableName, model.FieldStatus, query.Get(model.FieldStatus))

	from, err := queryDay(query.Get(paramArrivalFrom))
	if err != nil {
		return filterGroup, fmt.Errorf("%s: %w", paramArrivalFrom, err)
	}

	to, err := queryDay(query.Get(paramArrivalTo))
	if err != nil {
		return filterGroup, fmt.Errorf("%s: %w", paramArrivalTo, err)
	}

	filterGroup.AddRange(model.TableName, model.FieldArrivalDate, from, to)

	return filterGroup, nil
}

func queryDay(value string) (*time.Time, error) {
	if value == constant.Empty {
		return nil, nil //nolint:nilnil
	}

	day, err := timezone.Parse(constant.DayFormat, value)
	if err != nil {
		return nil, errors.New("expected a date formatted YYYY-MM-DD")
	}

	return &day, nil
}
