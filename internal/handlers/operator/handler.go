package operator

import (
	"net/http"

	"solireserve/infras/otel"
	"solireserve/internal/domains/operator/model"
	"solireserve/internal/domains/operator/model/dto"
	"solireserve/internal/domains/operator/service"
	"solireserve/shared/constant"
	gDto "solireserve/shared/dto"
	"solireserve/shared/validator"
	"solireserve/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Operator
	otel    otel.Otel
}

func New(service service.Operator, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/operators", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateOperator)
		routerGroup.Get("/", handler.GetOperators)
		routerGroup.Get("/{id}", handler.GetOperatorByID)
		routerGroup.Patch("/{id}", handler.UpdateOperator)
		routerGroup.Delete("/{id}", handler.DeleteOperator)
	})
}

// CreateOperator registers a social operator.
// @Summary Create a new operator
// @Tags Operator
// @Accept json
// @Produce json
// @Param request body dto.CreateOperatorRequest true "Create Operator Request"
// @Success 201 {object} response.Message "Operator created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/operators [post]
// @Security BearerAuth
func (handler *Handler) CreateOperator(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOperator")
	defer scope.End()

	var req dto.CreateOperatorRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create operator")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "operator created successfully")
}

// GetOperators retrieves operators.
// @Summary Get all operators
// @Tags Operator
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param nom query string false "Filter by name"
// @Param organisation query string false "Filter by organisation"
// @Param actif query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetOperatorsResponse] "List of operators"
// @Failure 500 {object} response.Error
// @Router /v1/operators [get]
// @Security BearerAuth
func (handler *Handler) GetOperators(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOperators")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.AddLike(model.TableName, model.FieldName, query.Get(model.FieldName))
	filterGroup.AddLike(model.TableName, model.FieldOrganisation, query.Get(model.FieldOrganisation))
	filterGroup.AddBool(model.TableName, model.FieldActive, query.Get(model.FieldActive))

	operators, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get operators")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, operators)
}

// GetOperatorByID retrieves an operator by its ID.
// @Summary Get an operator by ID
// @Tags Operator
// @Produce json
// @Param id path string true "Operator ID"
// @Success 200 {object} response.Data[dto.OperatorResponse] "Operator details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/operators/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetOperatorByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOperatorByID")
	defer scope.End()

	operator, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get operator")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, operator)
}

// UpdateOperator updates an operator.
// @Summary Update an operator
// @Tags Operator
// @Accept json
// @Produce json
// @Param id path string true "Operator ID"
// @Param request body dto.UpdateOperatorRequest true "Update Operator Request"
// @Success 200 {object} response.Message "Operator updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/operators/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateOperator(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOperator")
	defer scope.End()

	var req dto.UpdateOperatorRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update operator")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "operator updated successfully")
}

// DeleteOperator deletes an operator that is not referenced yet.
// @Summary Delete an operator
// @Tags Operator
// @Produce json
// @Param id path string true "Operator ID"
// @Success 200 {object} response.Message "Operator deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/operators/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteOperator(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteOperator")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete operator")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "operator deleted successfully")
}
