package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"curypulse/internal/analytics"
	"curypulse/internal/config"
	"curypulse/internal/dataset"
	"curypulse/internal/infrastructure"
	"curypulse/pkg/contracts/domain"
)

// DashboardService loads the delivery log and computes the aggregation
// tables behind each dashboard view. The normalized dataset is cached in
// memory and reloaded when the file on disk changes.
type DashboardService struct {
	cfg     *config.Config
	loader  *dataset.Loader
	metrics *infrastructure.BusinessMetrics
	logger  *slog.Logger

	mu         sync.Mutex
	cached     []domain.Order
	cachedSize int64
	cachedMod  time.Time
}

// NewDashboardService creates a dashboard service backed by the configured
// dataset file.
func NewDashboardService(cfg *config.Config, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		cfg:    cfg,
		loader: dataset.NewLoader(cfg.Dataset.Path, cfg.Dataset.Sheet, logger),
		logger: logger.With(slog.String("component", "dashboard_service")),
	}
}

// SetMetrics wires business metrics once telemetry is initialized. A nil
// receiver argument leaves metric recording disabled.
func (s *DashboardService) SetMetrics(m *infrastructure.BusinessMetrics) {
	s.metrics = m
}

// IntRange is a closed integer interval.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// CompanyView is the order-volume dashboard payload.
type CompanyView struct {
	Orders           int                          `json:"orders"`
	DailyOrders      []analytics.DailyOrders      `json:"daily_orders"`
	TrafficShare     []analytics.TrafficShare     `json:"traffic_share"`
	CityTrafficShare []analytics.CityTrafficShare `json:"city_traffic_share"`
	WeeklyOrders     []analytics.WeeklyOrders     `json:"weekly_orders"`
	WeeklyDriverLoad []analytics.WeeklyDriverLoad `json:"weekly_driver_load"`
	Hotspots         []analytics.DeliveryHotspot  `json:"delivery_hotspots"`
	GeneratedAt      time.Time                    `json:"generated_at"`
}

// DriversView is the driver-performance dashboard payload.
type DriversView struct {
	Orders           int                           `json:"orders"`
	AgeRange         IntRange                      `json:"age_range"`
	VehicleCondition IntRange                      `json:"vehicle_condition_range"`
	DriverRatings    []analytics.DriverRating      `json:"driver_ratings"`
	RatingByTraffic  []analytics.RatingStats       `json:"rating_by_traffic"`
	RatingByWeather  []analytics.RatingStats       `json:"rating_by_weather"`
	FastestByCity    []analytics.DriverDeliveryTime `json:"fastest_by_city"`
	SlowestByCity    []analytics.DriverDeliveryTime `json:"slowest_by_city"`
	GeneratedAt      time.Time                     `json:"generated_at"`
}

// RestaurantsView is the delivery-operations dashboard payload.
type RestaurantsView struct {
	Orders              int                                 `json:"orders"`
	UniqueDrivers       int                                 `json:"unique_drivers"`
	MeanDistanceKm      analytics.Float                     `json:"mean_distance_km"`
	FestivalTime        analytics.TimeStats                 `json:"festival_time"`
	NonFestivalTime     analytics.TimeStats                 `json:"non_festival_time"`
	DistanceByCity      []analytics.CityDistance            `json:"distance_by_city"`
	TimeByCity          []analytics.CityTimeStats           `json:"time_by_city"`
	TimeByCityOrderType []analytics.CityOrderTypeTimeStats  `json:"time_by_city_and_order_type"`
	TimeByCityTraffic   []analytics.CityTrafficTimeStats    `json:"time_by_city_and_traffic"`
	GeneratedAt         time.Time                           `json:"generated_at"`
}

// CompanyView computes the order-volume view over the filtered dataset.
func (s *DashboardService) CompanyView(ctx context.Context, f analytics.Filter) (*CompanyView, error) {
	orders, err := s.FilteredOrders(ctx, f)
	if err != nil {
		return nil, err
	}

	return &CompanyView{
		Orders:           len(orders),
		DailyOrders:      analytics.OrdersByDay(orders),
		TrafficShare:     analytics.TrafficOrderShare(orders),
		CityTrafficShare: analytics.TrafficShareByCity(orders),
		WeeklyOrders:     analytics.OrdersByWeek(orders),
		WeeklyDriverLoad: analytics.OrdersPerDriverByWeek(orders),
		Hotspots:         analytics.CentralDeliveryPoints(orders),
		GeneratedAt:      time.Now().UTC(),
	}, nil
}

// DriversView computes the driver-performance view over the filtered
// dataset.
func (s *DashboardService) DriversView(ctx context.Context, f analytics.Filter) (*DriversView, error) {
	orders, err := s.FilteredOrders(ctx, f)
	if err != nil {
		return nil, err
	}

	ageMin, ageMax := analytics.AgeRange(orders)
	condMin, condMax := analytics.VehicleConditionRange(orders)
	cities := s.cfg.Dataset.Cities
	topN := s.cfg.Dataset.TopDeliverers

	return &DriversView{
		Orders:           len(orders),
		AgeRange:         IntRange{Min: ageMin, Max: ageMax},
		VehicleCondition: IntRange{Min: condMin, Max: condMax},
		DriverRatings:    analytics.MeanRatingByDriver(orders),
		RatingByTraffic:  analytics.RatingStatsByTraffic(orders),
		RatingByWeather:  analytics.RatingStatsByWeather(orders),
		FastestByCity:    analytics.TopDeliverersByCity(orders, cities, true, topN),
		SlowestByCity:    analytics.TopDeliverersByCity(orders, cities, false, topN),
		GeneratedAt:      time.Now().UTC(),
	}, nil
}

// RestaurantsView computes the delivery-operations view over the filtered
// dataset.
func (s *DashboardService) RestaurantsView(ctx context.Context, f analytics.Filter) (*RestaurantsView, error) {
	orders, err := s.FilteredOrders(ctx, f)
	if err != nil {
		return nil, err
	}

	return &RestaurantsView{
		Orders:              len(orders),
		UniqueDrivers:       analytics.UniqueDrivers(orders),
		MeanDistanceKm:      analytics.Float(analytics.MeanDeliveryDistance(orders)),
		FestivalTime:        analytics.FestivalTimeStat(orders, domain.FestivalYes),
		NonFestivalTime:     analytics.FestivalTimeStat(orders, domain.FestivalNo),
		DistanceByCity:      analytics.MeanDistanceByCity(orders),
		TimeByCity:          analytics.DeliveryTimeByCity(orders),
		TimeByCityOrderType: analytics.DeliveryTimeByCityAndOrderType(orders),
		TimeByCityTraffic:   analytics.DeliveryTimeByCityAndTraffic(orders),
		GeneratedAt:         time.Now().UTC(),
	}, nil
}

// FilteredOrders returns the normalized dataset with the view filter
// applied. An empty result is not an error; each aggregation renders its
// own empty shape.
func (s *DashboardService) FilteredOrders(ctx context.Context, f analytics.Filter) ([]domain.Order, error) {
	orders, err := s.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(orders), nil
}

// Orders returns the full normalized dataset, loading it from disk when
// the cached copy is stale. Callers must not mutate the returned slice.
func (s *DashboardService) Orders(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, statErr := os.Stat(s.cfg.Dataset.Path)
	if statErr == nil && s.cached != nil && info.Size() == s.cachedSize && info.ModTime().Equal(s.cachedMod) {
		return s.cached, nil
	}

	start := time.Now()
	raw, err := s.loader.Load(ctx)
	if err != nil {
		infrastructure.RecordDatasetLoadMetrics(ctx, s.metrics, 0, 0, time.Since(start), err)
		return nil, fmt.Errorf("%w: load delivery log: %v", ErrDatasetUnavailable, err)
	}

	orders, err := dataset.Normalize(raw)
	infrastructure.RecordDatasetLoadMetrics(ctx, s.metrics, len(orders), len(raw)-len(orders), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("%w: normalize delivery log: %v", ErrDatasetUnavailable, err)
	}

	s.logger.InfoContext(ctx, "delivery log loaded",
		slog.String("path", s.cfg.Dataset.Path),
		slog.Int("rows_raw", len(raw)),
		slog.Int("rows_clean", len(orders)),
		slog.Duration("duration", time.Since(start)))

	if statErr == nil {
		s.cached = orders
		s.cachedSize = info.Size()
		s.cachedMod = info.ModTime()
	}
	return orders, nil
}
