// Package http contains the HTTP handlers serving the dashboard JSON API.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "finpulse/internal/errors"
	"finpulse/internal/exporter"
	"finpulse/internal/middleware"
	"finpulse/internal/services"
	"finpulse/pkg/contracts/domain"
)

// DashboardHandler serves the per-page dashboard payloads.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/filters", h.GetFilters)
	r.Get("/kpis", h.GetKPIs)
	r.Get("/overview", h.GetOverview)
	r.Get("/trends", h.GetTrends)
	r.Get("/demographics", h.GetDemographics)
	r.Get("/usecases", h.GetUseCases)
	r.Get("/conclusion", h.GetConclusion)

	return r
}

// parseFilterSpec builds a FilterSpec from the request query parameters.
func parseFilterSpec(r *http.Request) (domain.FilterSpec, error) {
	q := r.URL.Query()
	spec := domain.FilterSpec{
		Country:  q.Get("country"),
		Gender:   q.Get("gender"),
		AgeGroup: q.Get("age_group"),
		Location: q.Get("location"),
	}

	for param, target := range map[string]**int{
		"year_from": &spec.YearFrom,
		"year_to":   &spec.YearTo,
	} {
		raw := q.Get(param)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return spec, apierrors.ErrValidation(param, fmt.Sprintf("%q is not a valid year", raw))
		}
		*target = &v
	}
	return spec, nil
}

// mapServiceError translates service-level sentinel errors to client errors;
// anything else passes through for the central handler to classify.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidYearRange):
		return apierrors.ErrValidation("year_range", err.Error())
	case errors.Is(err, services.ErrInvalidFilter):
		return apierrors.InvalidRequestWithError(err)
	default:
		return err
	}
}

// respond handles one dashboard page request: parse filters, compute the
// payload, render it.
func (h *DashboardHandler) respond(w http.ResponseWriter, r *http.Request, page string, compute func(domain.FilterSpec) (interface{}, error)) {
	reqID := middleware.GetRequestID(r.Context())

	spec, err := parseFilterSpec(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "computing dashboard page",
		slog.String("request_id", reqID),
		slog.String("page", page),
		slog.Any("filter", spec),
	)

	data, err := compute(spec)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   data,
	})
}

// GetFilters handles GET /api/dashboard/filters.
func (h *DashboardHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.FilterOptions(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   opts,
	})
}

// GetKPIs handles GET /api/dashboard/kpis.
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "kpis", func(spec domain.FilterSpec) (interface{}, error) {
		return h.service.KPIs(r.Context(), spec)
	})
}

// GetOverview handles GET /api/dashboard/overview.
func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "overview", func(spec domain.FilterSpec) (interface{}, error) {
		return h.service.Overview(r.Context(), spec)
	})
}

// GetTrends handles GET /api/dashboard/trends.
func (h *DashboardHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "trends", func(spec domain.FilterSpec) (interface{}, error) {
		return h.service.Trends(r.Context(), spec)
	})
}

// GetDemographics handles GET /api/dashboard/demographics.
func (h *DashboardHandler) GetDemographics(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "demographics", func(spec domain.FilterSpec) (interface{}, error) {
		return h.service.Demographics(r.Context(), spec)
	})
}

// GetUseCases handles GET /api/dashboard/usecases.
func (h *DashboardHandler) GetUseCases(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "usecases", func(spec domain.FilterSpec) (interface{}, error) {
		return h.service.UseCases(r.Context(), spec)
	})
}

// GetConclusion handles GET /api/dashboard/conclusion.
func (h *DashboardHandler) GetConclusion(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "conclusion", func(spec domain.FilterSpec) (interface{}, error) {
		return h.service.Conclusion(r.Context(), spec)
	})
}

// ExportRequest is the POST /api/export body.
type ExportRequest struct {
	Format  string            `json:"format" validate:"required,oneof=csv xlsx"`
	Filters domain.FilterSpec `json:"filters"`
}

// Export handles POST /api/export: it builds the summary report for the
// requested filter selection and streams it as a file attachment.
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req ExportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	if err := services.ValidateExportFormat(req.Format); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", err.Error()))
		return
	}

	contentType, err := exporter.ContentType(req.Format)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "exporting report",
		slog.String("request_id", reqID),
		slog.String("format", req.Format),
		slog.Any("filter", req.Filters),
	)

	rep, err := h.service.BuildReport(r.Context(), req.Filters)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", exporter.Filename(req.Format, rep.GeneratedAt)))

	switch req.Format {
	case exporter.FormatCSV:
		err = exporter.WriteCSV(w, rep)
	case exporter.FormatXLSX:
		err = exporter.WriteWorkbook(w, rep)
	}
	if err != nil {
		// Headers are already out; log instead of rendering a problem.
		h.logger.ErrorContext(r.Context(), "failed to stream export",
			slog.String("request_id", reqID),
			slog.String("format", req.Format),
			slog.String("error", err.Error()),
		)
	}
}
