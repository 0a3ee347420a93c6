package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"curypulse/internal/analytics"
	"curypulse/pkg/contracts/domain"
)

// orderHeaders matches the upstream export's column names so a cleaned
// export can be re-ingested by the loader.
var orderHeaders = []string{
	"ID", "Delivery_person_ID", "Delivery_person_Age", "Delivery_person_Ratings",
	"Restaurant_latitude", "Restaurant_longitude", "Delivery_location_latitude", "Delivery_location_longitude",
	"Order_Date", "Weatherconditions", "Road_traffic_density", "Vehicle_condition",
	"Type_of_order", "Type_of_vehicle", "multiple_deliveries", "Festival", "City", "Time_taken(min)",
}

// WriteOrders streams normalized orders as CSV, prefixed with a UTF-8 BOM
// for Excel compatibility.
func WriteOrders(w io.Writer, orders []domain.Order) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(orderHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i := range orders {
		if err := writer.Write(orderToCSVRow(&orders[i])); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// OrderExporter exports the cleaned delivery log and its summary tables
type OrderExporter struct {
	csv *CSVWriter
}

// NewOrderExporter creates a new order exporter rooted at the given
// directory
func NewOrderExporter(baseDir string) *OrderExporter {
	return &OrderExporter{csv: NewCSVWriter(baseDir)}
}

// ExportOrders writes the cleaned order records to a CSV file
func (e *OrderExporter) ExportOrders(orders []domain.Order, outputPath string) error {
	stream, err := e.csv.CreateStreamWriter(outputPath, orderHeaders)
	if err != nil {
		return fmt.Errorf("create order export: %w", err)
	}

	for i := range orders {
		if err := stream.WriteRecord(orderToCSVRow(&orders[i])); err != nil {
			stream.Close()
			return fmt.Errorf("write order %d: %w", i, err)
		}
	}

	return stream.Close()
}

// ExportSummaryReports writes one CSV per aggregation table
func (e *OrderExporter) ExportSummaryReports(orders []domain.Order) error {
	trafficRows := [][]string{}
	for _, row := range analytics.TrafficOrderShare(orders) {
		trafficRows = append(trafficRows, []string{row.Traffic, formatInt(int64(row.Orders)), formatFloat(row.Percent)})
	}
	if err := e.csv.WriteSimpleCSV("traffic_share.csv",
		[]string{"Road_traffic_density", "Orders", "Percent"}, trafficRows); err != nil {
		return fmt.Errorf("export traffic share: %w", err)
	}

	weeklyRows := [][]string{}
	for _, row := range analytics.OrdersByWeek(orders) {
		weeklyRows = append(weeklyRows, []string{row.Week, formatInt(int64(row.Orders))})
	}
	if err := e.csv.WriteSimpleCSV("weekly_orders.csv",
		[]string{"Week", "Orders"}, weeklyRows); err != nil {
		return fmt.Errorf("export weekly orders: %w", err)
	}

	timeRows := [][]string{}
	for _, row := range analytics.DeliveryTimeByCity(orders) {
		timeRows = append(timeRows, []string{row.City, formatStat(row.Mean), formatStat(row.StdDev)})
	}
	if err := e.csv.WriteSimpleCSV("time_by_city.csv",
		[]string{"City", "Mean_min", "StdDev_min"}, timeRows); err != nil {
		return fmt.Errorf("export time by city: %w", err)
	}

	distanceRows := [][]string{}
	for _, row := range analytics.MeanDistanceByCity(orders) {
		distanceRows = append(distanceRows, []string{row.City, formatFloat(row.MeanKm)})
	}
	if err := e.csv.WriteSimpleCSV("distance_by_city.csv",
		[]string{"City", "Mean_km"}, distanceRows); err != nil {
		return fmt.Errorf("export distance by city: %w", err)
	}

	return nil
}

// orderToCSVRow converts a normalized order back to the upstream column
// layout. Time taken is written as a bare minute count, which the
// normalizer accepts on re-ingestion.
func orderToCSVRow(o *domain.Order) []string {
	return []string{
		o.ID,
		o.DriverID,
		strconv.Itoa(o.DriverAge),
		strconv.FormatFloat(o.DriverRating, 'f', -1, 64),
		formatCoord(o.RestaurantLat),
		formatCoord(o.RestaurantLon),
		formatCoord(o.DeliveryLat),
		formatCoord(o.DeliveryLon),
		o.OrderDate.Format(domain.OrderDateFormat),
		o.Weather,
		o.TrafficDensity,
		strconv.Itoa(o.VehicleCondition),
		o.OrderType,
		o.VehicleType,
		strconv.Itoa(o.MultipleDeliveries),
		o.Festival,
		o.City,
		strconv.Itoa(o.TimeTakenMin),
	}
}
