package convention

import (
	"net/http"

	"solireserve/infras/otel"
	"solireserve/internal/domains/convention/model"
	"solireserve/internal/domains/convention/model/dto"
	"solireserve/internal/domains/convention/service"
	"solireserve/shared/constant"
	gDto "solireserve/shared/dto"
	"solireserve/shared/validator"
	"solireserve/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Convention
	otel    otel.Otel
}

func New(service service.Convention, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/conventions", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateConvention)
		routerGroup.Get("/", handler.GetConventions)
		routerGroup.Get("/{id}", handler.GetConventionByID)
		routerGroup.Patch("/{id}", handler.UpdateConvention)
		routerGroup.Post("/{id}/sync", handler.SyncPrice)
		routerGroup.Post("/{id}/quote", handler.Quote)
		routerGroup.Post("/{id}/status", handler.SetStatus)
	})
}

// CreateConvention registers a negotiated rate between an operator and a hotel.
// @Summary Create a convention
// @Description Either prix_conventionne or reduction must be sent; the other one is derived.
// @Tags Convention
// @Accept json
// @Produce json
// @Param request body dto.CreateConventionRequest true "Convention"
// @Success 201 {object} response.Data[dto.ConventionResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/conventions [post]
// @Security BearerAuth
func (handler *Handler) CreateConvention(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateConvention")
	defer scope.End()

	var req dto.CreateConventionRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create convention")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetConventions lists conventions.
// @Summary Get all conventions
// @Tags Convention
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param operator_id query string false "Filter by operator"
// @Param hotel_id query string false "Filter by hotel"
// @Param statut query string false "Filter by status" Enums(active, expiree, suspendue)
// @Param type_chambre query string false "Filter by room type"
// @Success 200 {object} response.Data[dto.GetConventionsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/conventions [get]
// @Security BearerAuth
func (handler *Handler) GetConventions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConventions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.AddEqual(model.TableName, model.FieldOperatorID, query.Get(model.FieldOperatorID))
	filterGroup.AddEqual(model.TableName, model.FieldHotelID, query.Get(model.FieldHotelID))
	filterGroup.AddEqual(model.TableName, model.FieldStatus, query.Get(model.FieldStatus))
	filterGroup.AddEqual(model.TableName, model.FieldRoomType, query.Get(model.FieldRoomType))

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get conventions")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetConventionByID returns one convention.
// @Summary Get a convention by ID
// @Tags Convention
// @Produce json
// @Param id path string true "Convention ID"
// @Success 200 {object} response.Data[dto.ConventionResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/conventions/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetConventionByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConventionByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get convention")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateConvention edits dates, conditions and the monthly table.
// @Summary Update a convention
// @Tags Convention
// @Accept json
// @Produce json
// @Param id path string true "Convention ID"
// @Param request body dto.UpdateConventionRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.ConventionResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/conventions/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateConvention(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateConvention")
	defer scope.End()

	var req dto.UpdateConventionRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update convention")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SyncPrice edits one of prix_standard, prix_conventionne or reduction and recomputes the other.
// @Summary Edit the convention price pair
// @Tags Convention
// @Accept json
// @Produce json
// @Param id path string true "Convention ID"
// @Param request body dto.SyncPriceRequest true "Edited field"
// @Success 200 {object} response.Data[dto.ConventionResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/conventions/{id}/sync [post]
// @Security BearerAuth
func (handler *Handler) SyncPrice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SyncPrice")
	defer scope.End()

	var req dto.SyncPriceRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SyncPrice(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sync convention price")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Convention " + string(req.Field) + " changed by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// Quote computes the effective price of a stay under the convention.
// @Summary Quote a stay
// @Tags Convention
// @Accept json
// @Produce json
// @Param id path string true "Convention ID"
// @Param request body dto.QuoteRequest true "Stay"
// @Success 200 {object} response.Data[dto.QuoteResponse]
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/conventions/{id}/quote [post]
// @Security BearerAuth
func (handler *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Quote")
	defer scope.End()

	var req dto.QuoteRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Quote(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to quote stay")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetStatus activates, suspends or expires a convention.
// @Summary Change the convention status
// @Tags Convention
// @Accept json
// @Produce json
// @Param id path string true "Convention ID"
// @Param request body dto.UpdateStatusRequest true "Status"
// @Success 200 {object} response.Data[dto.ConventionResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/conventions/{id}/status [post]
// @Security BearerAuth
func (handler *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetStatus")
	defer scope.End()

	var req dto.UpdateStatusRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SetStatus(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change convention status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
