package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"curypulse/pkg/contracts/domain"
)

// Loader reads the raw delivery log from disk. CSV and XLSX inputs are
// supported; the format is picked from the file extension.
type Loader struct {
	path   string
	sheet  string
	logger *slog.Logger
}

// NewLoader creates a loader for the given input file. sheet is only used
// for XLSX input; leave it empty to read the workbook's first sheet.
func NewLoader(path, sheet string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{path: path, sheet: sheet, logger: logger}
}

// Load reads and decodes the raw order table.
func (l *Loader) Load(ctx context.Context) ([]domain.RawOrder, error) {
	l.logger.InfoContext(ctx, "loading delivery log",
		slog.String("path", l.path))

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(l.path)) {
	case ".xlsx":
		rows, err = l.readXLSX()
	default:
		rows, err = l.readCSV()
	}
	if err != nil {
		return nil, err
	}

	orders, err := decodeRows(rows)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "delivery log loaded",
		slog.String("path", l.path),
		slog.Int("rows", len(orders)))
	return orders, nil
}

func (l *Loader) readCSV() ([][]string, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open delivery log: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read delivery log: %w", err)
	}

	// Strip UTF-8 BOM so the first header cell matches.
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse delivery log CSV: %w", err)
	}
	return rows, nil
}

func (l *Loader) readXLSX() ([][]string, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := l.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// column names as they appear in the export header.
const (
	colID             = "ID"
	colDriverID       = "Delivery_person_ID"
	colDriverAge      = "Delivery_person_Age"
	colDriverRating   = "Delivery_person_Ratings"
	colRestaurantLat  = "Restaurant_latitude"
	colRestaurantLon  = "Restaurant_longitude"
	colDeliveryLat    = "Delivery_location_latitude"
	colDeliveryLon    = "Delivery_location_longitude"
	colOrderDate      = "Order_Date"
	colWeather        = "Weatherconditions"
	colTraffic        = "Road_traffic_density"
	colVehicleCond    = "Vehicle_condition"
	colOrderType      = "Type_of_order"
	colVehicleType    = "Type_of_vehicle"
	colMultiple       = "multiple_deliveries"
	colFestival       = "Festival"
	colCity           = "City"
	colTimeTaken      = "Time_taken(min)"
)

func decodeRows(rows [][]string) ([]domain.RawOrder, error) {
	if len(rows) < 2 {
		return nil, ErrNoRecords
	}

	idx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{
		colID, colDriverID, colDriverAge, colDriverRating,
		colRestaurantLat, colRestaurantLon, colDeliveryLat, colDeliveryLon,
		colOrderDate, colWeather, colTraffic, colVehicleCond,
		colOrderType, colVehicleType, colMultiple, colFestival, colCity, colTimeTaken,
	} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("delivery log is missing column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		i := idx[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	orders := make([]domain.RawOrder, 0, len(rows)-1)
	for n, row := range rows[1:] {
		restaurantLat, err := parseCoordinate(n+1, colRestaurantLat, cell(row, colRestaurantLat))
		if err != nil {
			return nil, err
		}
		restaurantLon, err := parseCoordinate(n+1, colRestaurantLon, cell(row, colRestaurantLon))
		if err != nil {
			return nil, err
		}
		deliveryLat, err := parseCoordinate(n+1, colDeliveryLat, cell(row, colDeliveryLat))
		if err != nil {
			return nil, err
		}
		deliveryLon, err := parseCoordinate(n+1, colDeliveryLon, cell(row, colDeliveryLon))
		if err != nil {
			return nil, err
		}
		vehicleCond, err := strconv.Atoi(strings.TrimSpace(cell(row, colVehicleCond)))
		if err != nil {
			return nil, &ConversionError{Field: colVehicleCond, Value: cell(row, colVehicleCond), Row: n + 1, Err: err}
		}

		orders = append(orders, domain.RawOrder{
			ID:                 cell(row, colID),
			DriverID:           cell(row, colDriverID),
			DriverAge:          cell(row, colDriverAge),
			DriverRating:       cell(row, colDriverRating),
			RestaurantLat:      restaurantLat,
			RestaurantLon:      restaurantLon,
			DeliveryLat:        deliveryLat,
			DeliveryLon:        deliveryLon,
			OrderDate:          cell(row, colOrderDate),
			Weather:            cell(row, colWeather),
			TrafficDensity:     cell(row, colTraffic),
			VehicleCondition:   vehicleCond,
			OrderType:          cell(row, colOrderType),
			VehicleType:        cell(row, colVehicleType),
			MultipleDeliveries: cell(row, colMultiple),
			Festival:           cell(row, colFestival),
			City:               cell(row, colCity),
			TimeTaken:          cell(row, colTimeTaken),
		})
	}
	return orders, nil
}

func parseCoordinate(row int, field, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, &ConversionError{Field: field, Value: value, Row: row, Err: err}
	}
	return v, nil
}
