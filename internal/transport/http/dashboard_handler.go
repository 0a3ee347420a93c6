package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"curypulse/internal/analytics"
	apierrors "curypulse/internal/errors"
	"curypulse/internal/exporter"
	custommw "curypulse/internal/middleware"
	"curypulse/internal/services"
)

// DashboardHandler handles dashboard view HTTP requests with RFC 7807
// compliance
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validation   *custommw.ValidationMiddleware
}

// NewDashboardHandler creates a new dashboard handler with RFC 7807 error
// handling
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validation:   custommw.NewValidationMiddleware(logger, errorHandler),
	}
}

// Routes returns the dashboard routes with proper Chi patterns
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/company", h.GetCompanyView)
		r.Get("/drivers", h.GetDriversView)
		r.Get("/restaurants", h.GetRestaurantsView)
		r.Get("/orders", h.GetOrders)
	})

	r.Get("/export/orders.csv", h.ExportOrders)

	return r
}

// GetCompanyView handles GET /api/dashboard/company
func (h *DashboardHandler) GetCompanyView(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	start := time.Now()
	view, err := h.service.CompanyView(r.Context(), f)
	custommw.RecordViewRenderMetrics(r.Context(), "company", time.Since(start), err)
	if err != nil {
		h.handleServiceError(w, r, "company", err)
		return
	}

	render.JSON(w, r, view)
}

// GetDriversView handles GET /api/dashboard/drivers
func (h *DashboardHandler) GetDriversView(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	start := time.Now()
	view, err := h.service.DriversView(r.Context(), f)
	custommw.RecordViewRenderMetrics(r.Context(), "drivers", time.Since(start), err)
	if err != nil {
		h.handleServiceError(w, r, "drivers", err)
		return
	}

	render.JSON(w, r, view)
}

// GetRestaurantsView handles GET /api/dashboard/restaurants
func (h *DashboardHandler) GetRestaurantsView(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	start := time.Now()
	view, err := h.service.RestaurantsView(r.Context(), f)
	custommw.RecordViewRenderMetrics(r.Context(), "restaurants", time.Since(start), err)
	if err != nil {
		h.handleServiceError(w, r, "restaurants", err)
		return
	}

	render.JSON(w, r, view)
}

// GetOrders handles GET /api/dashboard/orders and returns the filtered
// normalized records
func (h *DashboardHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	orders, err := h.service.FilteredOrders(r.Context(), f)
	if err != nil {
		h.handleServiceError(w, r, "orders", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"count":  len(orders),
		"orders": orders,
	})
}

// ExportOrders handles GET /api/dashboard/export/orders.csv
func (h *DashboardHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	orders, err := h.service.FilteredOrders(r.Context(), f)
	if err != nil {
		h.handleServiceError(w, r, "export", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename=orders.csv`)

	if err := exporter.WriteOrders(w, orders); err != nil {
		// Headers are already out; log and drop the connection.
		h.logger.ErrorContext(r.Context(), "failed to stream order export",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	}
}

// filterQuery is the bound form of the filter query string, validated
// with struct tags before conversion into analytics.Filter.
type filterQuery struct {
	Before  string   `json:"before" validate:"omitempty,iso8601"`
	Traffic []string `json:"traffic" validate:"omitempty,dive,trafficdensity"`
}

// parseFilter binds the view filter from query parameters. The reported
// false return means a validation problem was already written.
func (h *DashboardHandler) parseFilter(w http.ResponseWriter, r *http.Request) (analytics.Filter, bool) {
	return parseFilter(h.validation, h.errorHandler, w, r)
}

func parseFilter(validation *custommw.ValidationMiddleware, errorHandler *apierrors.ErrorHandler, w http.ResponseWriter, r *http.Request) (analytics.Filter, bool) {
	q := r.URL.Query()

	fq := filterQuery{Before: q.Get("before")}
	for _, raw := range q["traffic"] {
		for _, value := range strings.Split(raw, ",") {
			if value = strings.TrimSpace(value); value != "" {
				fq.Traffic = append(fq.Traffic, value)
			}
		}
	}

	if err := validation.ValidateStruct(fq); err != nil {
		errorHandler.HandleError(w, r, err)
		return analytics.Filter{}, false
	}

	var f analytics.Filter
	f.Traffic = fq.Traffic

	if fq.Before != "" {
		// The iso8601 tag checks shape only; reject impossible dates here.
		t, err := time.Parse("2006-01-02", fq.Before)
		if err != nil {
			errorHandler.HandleError(w, r, apierrors.ErrValidation("before", "before must be a date in YYYY-MM-DD form"))
			return analytics.Filter{}, false
		}
		f.Before = t
	}

	return f, true
}

// handleServiceError maps service errors to API errors
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, view string, err error) {
	h.logger.ErrorContext(r.Context(), "dashboard view failed",
		slog.String("view", view),
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if errors.Is(err, services.ErrDatasetUnavailable) {
		h.errorHandler.HandleError(w, r, apierrors.DataUnavailableError(err))
		return
	}

	h.errorHandler.HandleError(w, r, apierrors.NewInternalError("Failed to compute dashboard view"))
}
