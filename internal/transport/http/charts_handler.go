package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"curypulse/internal/analytics"
	apierrors "curypulse/internal/errors"
	custommw "curypulse/internal/middleware"
)

// ChartsHandler renders the dashboard views as standalone ECharts pages.
// The filter query parameters match the JSON API.
type ChartsHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validation   *custommw.ValidationMiddleware
}

// NewChartsHandler creates a new charts handler
func NewChartsHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ChartsHandler {
	return &ChartsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "charts_handler")),
		errorHandler: errorHandler,
		validation:   custommw.NewValidationMiddleware(logger, errorHandler),
	}
}

// Routes returns the chart page routes
func (h *ChartsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/company", h.CompanyCharts)
	r.Get("/drivers", h.DriversCharts)
	r.Get("/restaurants", h.RestaurantsCharts)
	return r
}

// CompanyCharts handles GET /charts/company
func (h *ChartsHandler) CompanyCharts(w http.ResponseWriter, r *http.Request) {
	f, ok := parseFilter(h.validation, h.errorHandler, w, r)
	if !ok {
		return
	}

	view, err := h.service.CompanyView(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.DataUnavailableError(err))
		return
	}

	daily := charts.NewBar()
	daily.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Orders per day"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	dates := make([]string, len(view.DailyOrders))
	counts := make([]opts.BarData, len(view.DailyOrders))
	for i, row := range view.DailyOrders {
		dates[i] = row.Date.Format("2006-01-02")
		counts[i] = opts.BarData{Value: row.Orders}
	}
	daily.SetXAxis(dates).AddSeries("orders", counts)

	traffic := charts.NewPie()
	traffic.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Order share by traffic density"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	shares := make([]opts.PieData, len(view.TrafficShare))
	for i, row := range view.TrafficShare {
		shares[i] = opts.PieData{Name: row.Traffic, Value: row.Percent}
	}
	traffic.AddSeries("traffic", shares)

	weekly := charts.NewLine()
	weekly.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Orders per week"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	weeks := make([]string, len(view.WeeklyOrders))
	weeklyCounts := make([]opts.LineData, len(view.WeeklyOrders))
	for i, row := range view.WeeklyOrders {
		weeks[i] = row.Week
		weeklyCounts[i] = opts.LineData{Value: row.Orders}
	}
	weekly.SetXAxis(weeks).AddSeries("orders", weeklyCounts)

	load := charts.NewLine()
	load.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Orders per driver per week"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	loadWeeks := make([]string, len(view.WeeklyDriverLoad))
	loads := make([]opts.LineData, len(view.WeeklyDriverLoad))
	for i, row := range view.WeeklyDriverLoad {
		loadWeeks[i] = row.Week
		loads[i] = opts.LineData{Value: row.OrdersPerDriver}
	}
	load.SetXAxis(loadWeeks).AddSeries("load", loads)

	hotspots := charts.NewScatter()
	hotspots.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Central delivery points", Subtitle: "median location per city and traffic density"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "longitude", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "latitude", Scale: opts.Bool(true)}),
	)
	points := make([]opts.ScatterData, len(view.Hotspots))
	for i, row := range view.Hotspots {
		points[i] = opts.ScatterData{
			Name:  fmt.Sprintf("%s / %s", row.City, row.Traffic),
			Value: []interface{}{row.Lon, row.Lat},
		}
	}
	hotspots.AddSeries("hotspots", points, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))

	h.renderPage(w, r, daily, traffic, weekly, load, hotspots)
}

// DriversCharts handles GET /charts/drivers
func (h *ChartsHandler) DriversCharts(w http.ResponseWriter, r *http.Request) {
	f, ok := parseFilter(h.validation, h.errorHandler, w, r)
	if !ok {
		return
	}

	view, err := h.service.DriversView(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.DataUnavailableError(err))
		return
	}

	byTraffic := ratingBar("Driver rating by traffic density", view.RatingByTraffic)
	byWeather := ratingBar("Driver rating by weather", view.RatingByWeather)

	fastest := charts.NewBar()
	fastest.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Fastest deliverers", Subtitle: "slowest recorded delivery per driver, minutes"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	drivers := make([]string, len(view.FastestByCity))
	minutes := make([]opts.BarData, len(view.FastestByCity))
	for i, row := range view.FastestByCity {
		drivers[i] = fmt.Sprintf("%s (%s)", row.DriverID, row.City)
		minutes[i] = opts.BarData{Value: row.Minutes}
	}
	fastest.SetXAxis(drivers).AddSeries("minutes", minutes)

	h.renderPage(w, r, byTraffic, byWeather, fastest)
}

// RestaurantsCharts handles GET /charts/restaurants
func (h *ChartsHandler) RestaurantsCharts(w http.ResponseWriter, r *http.Request) {
	f, ok := parseFilter(h.validation, h.errorHandler, w, r)
	if !ok {
		return
	}

	view, err := h.service.RestaurantsView(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.DataUnavailableError(err))
		return
	}

	distance := charts.NewBar()
	distance.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Mean delivery distance by city", Subtitle: "km"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	cities := make([]string, len(view.DistanceByCity))
	kms := make([]opts.BarData, len(view.DistanceByCity))
	for i, row := range view.DistanceByCity {
		cities[i] = row.City
		kms[i] = opts.BarData{Value: row.MeanKm}
	}
	distance.SetXAxis(cities).AddSeries("km", kms)

	times := charts.NewBar()
	times.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Mean delivery time by city", Subtitle: "minutes"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	timeCities := make([]string, len(view.TimeByCity))
	means := make([]opts.BarData, len(view.TimeByCity))
	for i, row := range view.TimeByCity {
		timeCities[i] = row.City
		means[i] = opts.BarData{Value: chartValue(row.Mean)}
	}
	times.SetXAxis(timeCities).AddSeries("minutes", means)

	byTraffic := charts.NewBar()
	byTraffic.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Mean delivery time by city and traffic", Subtitle: "minutes"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	pairs := make([]string, len(view.TimeByCityTraffic))
	pairMeans := make([]opts.BarData, len(view.TimeByCityTraffic))
	for i, row := range view.TimeByCityTraffic {
		pairs[i] = fmt.Sprintf("%s / %s", row.City, row.Traffic)
		pairMeans[i] = opts.BarData{Value: chartValue(row.Mean)}
	}
	byTraffic.SetXAxis(pairs).AddSeries("minutes", pairMeans)

	h.renderPage(w, r, distance, times, byTraffic)
}

// renderPage assembles the charts into one page and writes it out
func (h *ChartsHandler) renderPage(w http.ResponseWriter, r *http.Request, chartList ...components.Charter) {
	page := components.NewPage()
	page.AddCharts(chartList...)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render chart page",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.NewInternalError("Failed to render charts"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// ratingBar builds a mean-rating bar chart over one grouping category
func ratingBar(title string, rows []analytics.RatingStats) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	keys := make([]string, len(rows))
	means := make([]opts.BarData, len(rows))
	for i, row := range rows {
		keys[i] = row.Key
		means[i] = opts.BarData{Value: chartValue(row.Mean)}
	}
	bar.SetXAxis(keys).AddSeries("mean rating", means)
	return bar
}

// chartValue converts a statistic to a chart value, turning NaN into a gap
func chartValue(f analytics.Float) interface{} {
	if f.IsNaN() {
		return nil
	}
	return float64(f)
}
