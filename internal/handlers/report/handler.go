package report

import (
	"net/http"

	"solireserve/infras/otel"
	"solireserve/internal/domains/report/model"
	"solireserve/internal/domains/report/model/dto"
	"solireserve/internal/domains/report/service"
	"solireserve/shared/constant"
	"solireserve/shared/validator"
	"solireserve/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/savings", handler.GetSavings)
		routerGroup.Post("/savings/export", handler.ExportSavings)
		routerGroup.Get("/processes", handler.GetProcesses)
	})
}

func savingsRequest(r *http.Request) (dto.SavingsRequest, error) {
	query := r.URL.Query()

	req := dto.SavingsRequest{
		OperatorID: query.Get("operator_id"),
		HotelID:    query.Get("hotel_id"),
		From:       query.Get(model.FieldFrom),
		To:         query.Get(model.FieldTo),
	}

	return req, validator.ValidateStruct(&req) //nolint:wrapcheck
}

// GetSavings reports what conventions saved compared to standard rates.
// @Summary Savings report
// @Tags Report
// @Produce json
// @Param operator_id query string false "Filter by operator"
// @Param hotel_id query string false "Filter by hotel"
// @Param from query string false "First arrival date (YYYY-MM-DD)"
// @Param to query string false "Last arrival date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.SavingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/savings [get]
// @Security BearerAuth
func (handler *Handler) GetSavings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSavings")
	defer scope.End()

	req, err := savingsRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Savings(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get savings report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ExportSavings uploads the savings report grouped by operator as CSV.
// @Summary Export savings report
// @Tags Report
// @Produce json
// @Param operator_id query string false "Filter by operator"
// @Param hotel_id query string false "Filter by hotel"
// @Param from query string false "First arrival date (YYYY-MM-DD)"
// @Param to query string false "Last arrival date (YYYY-MM-DD)"
// @Success 201 {object} response.Data[dto.ExportResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/savings/export [post]
// @Security BearerAuth
func (handler *Handler) ExportSavings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportSavings")
	defer scope.End()

	req, err := savingsRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.ExportSavings(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export savings report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetProcesses summarizes reservation processes.
// @Summary Processes report
// @Tags Report
// @Produce json
// @Success 200 {object} response.Data[dto.ProcessesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/reports/processes [get]
// @Security BearerAuth
func (handler *Handler) GetProcesses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProcesses")
	defer scope.End()

	res, err := handler.service.Processes(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get processes report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
