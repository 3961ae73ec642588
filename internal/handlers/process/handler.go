package process

import (
	"net/http"

	"solireserve/infras/otel"
	"solireserve/internal/domains/process/model"
	"solireserve/internal/domains/process/model/dto"
	"solireserve/internal/domains/process/service"
	"solireserve/shared/constant"
	gDto "solireserve/shared/dto"
	"solireserve/shared/validator"
	"solireserve/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Process
	otel    otel.Otel
}

func New(service service.Process, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/processes", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetProcesses)
		routerGroup.Get("/{reservation_id}", handler.GetProcess)
		routerGroup.Post("/{reservation_id}/advance", handler.Advance)
		routerGroup.Patch("/{reservation_id}/priority", handler.SetPriority)
	})
}

// GetProcesses lists reservation processes.
// @Summary Get all processes
// @Tags Process
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param statut query string false "Filter by aggregate status" Enums(en_cours, termine, annule)
// @Param priorite query string false "Filter by priority" Enums(basse, normale, haute, urgente)
// @Success 200 {object} response.Data[dto.GetProcessesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/processes [get]
// @Security BearerAuth
func (handler *Handler) GetProcesses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProcesses")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.AddIn(model.TableName, model.FieldStatus, r.URL.Query().Get(model.FieldStatus))
	filterGroup.AddIn(model.TableName, model.FieldPriority, r.URL.Query().Get(model.FieldPriority))

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get processes")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetProcess returns the process of a reservation with its three stages.
// @Summary Get a reservation process
// @Tags Process
// @Produce json
// @Param reservation_id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ProcessResponse]
// @Failure 404 {object} response.Error
// @Router /v1/processes/{reservation_id} [get]
// @Security BearerAuth
func (handler *Handler) GetProcess(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProcess")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamReservationID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get process")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Advance moves one stage of the process.
// @Summary Advance a reservation process
// @Description Voucher and purchase order accept valide, refuse and expire; the invoice accepts generee, envoyee, payee and impayee.
// @Tags Process
// @Accept json
// @Produce json
// @Param reservation_id path string true "Reservation ID"
// @Param request body dto.AdvanceRequest true "Transition"
// @Success 200 {object} response.Data[dto.ProcessResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/processes/{reservation_id}/advance [post]
// @Security BearerAuth
func (handler *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Advance")
	defer scope.End()

	var req dto.AdvanceRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	reservationID := chi.URLParam(r, constant.RequestParamReservationID)

	res, err := handler.service.Advance(ctx, req, reservationID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reservation_id", reservationID).Msg("failed to advance process")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Process " + string(req.Stage) + " set to " + req.Status + " by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// SetPriority changes the handling priority of a process.
// @Summary Change process priority
// @Tags Process
// @Accept json
// @Produce json
// @Param reservation_id path string true "Reservation ID"
// @Param request body dto.UpdatePriorityRequest true "Priority"
// @Success 200 {object} response.Data[dto.ProcessResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/processes/{reservation_id}/priority [patch]
// @Security BearerAuth
func (handler *Handler) SetPriority(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetPriority")
	defer scope.End()

	var req dto.UpdatePriorityRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SetPriority(ctx, req, chi.URLParam(r, constant.RequestParamReservationID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set process priority")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
