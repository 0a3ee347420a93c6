package domain

import (
	"time"
)

// MissingValue is the literal marker the upstream export uses for absent
// values. Note the trailing space: it is part of the marker, not noise.
const MissingValue = "NaN "

// RawOrder is one row of the delivery log exactly as ingested. Numeric-like
// fields stay strings until the normalizer has dropped rows carrying the
// missing-value marker.
type RawOrder struct {
	ID                string  `json:"id" csv:"ID"`
	DriverID          string  `json:"driver_id" csv:"Delivery_person_ID"`
	DriverAge         string  `json:"driver_age" csv:"Delivery_person_Age"`
	DriverRating      string  `json:"driver_rating" csv:"Delivery_person_Ratings"`
	RestaurantLat     float64 `json:"restaurant_latitude" csv:"Restaurant_latitude"`
	RestaurantLon     float64 `json:"restaurant_longitude" csv:"Restaurant_longitude"`
	DeliveryLat       float64 `json:"delivery_latitude" csv:"Delivery_location_latitude"`
	DeliveryLon       float64 `json:"delivery_longitude" csv:"Delivery_location_longitude"`
	OrderDate         string  `json:"order_date" csv:"Order_Date"`
	Weather           string  `json:"weather" csv:"Weatherconditions"`
	TrafficDensity    string  `json:"traffic_density" csv:"Road_traffic_density"`
	VehicleCondition  int     `json:"vehicle_condition" csv:"Vehicle_condition"`
	OrderType         string  `json:"order_type" csv:"Type_of_order"`
	VehicleType       string  `json:"vehicle_type" csv:"Type_of_vehicle"`
	MultipleDeliveries string `json:"multiple_deliveries" csv:"multiple_deliveries"`
	Festival          string  `json:"festival" csv:"Festival"`
	City              string  `json:"city" csv:"City"`
	TimeTaken         string  `json:"time_taken" csv:"Time_taken(min)"`
}

// Order is a delivery record after normalization. Every field is typed and
// trimmed; rows that carried the missing-value marker in age, multiple
// deliveries, traffic density, city or festival never make it this far.
type Order struct {
	ID                 string    `json:"id"`
	DriverID           string    `json:"driver_id"`
	DriverAge          int       `json:"driver_age"`
	DriverRating       float64   `json:"driver_rating"`
	RestaurantLat      float64   `json:"restaurant_latitude"`
	RestaurantLon      float64   `json:"restaurant_longitude"`
	DeliveryLat        float64   `json:"delivery_latitude"`
	DeliveryLon        float64   `json:"delivery_longitude"`
	OrderDate          time.Time `json:"order_date"`
	Weather            string    `json:"weather"`
	TrafficDensity     string    `json:"traffic_density"`
	VehicleCondition   int       `json:"vehicle_condition"`
	OrderType          string    `json:"order_type"`
	VehicleType        string    `json:"vehicle_type"`
	MultipleDeliveries int       `json:"multiple_deliveries"`
	Festival           string    `json:"festival"`
	City               string    `json:"city"`
	TimeTakenMin       int       `json:"time_taken_min"`
}

// Traffic density categories as they appear in the cleaned data.
const (
	TrafficLow    = "Low"
	TrafficMedium = "Medium"
	TrafficHigh   = "High"
	TrafficJam    = "Jam"
)

// TrafficDensities lists the known categories in severity order.
var TrafficDensities = []string{TrafficLow, TrafficMedium, TrafficHigh, TrafficJam}

// City categories as they appear in the cleaned data. "Metropolitian" is the
// upstream export's spelling and is preserved verbatim.
const (
	CityMetropolitian = "Metropolitian"
	CityUrban         = "Urban"
	CitySemiUrban     = "Semi-Urban"
)

// Cities lists the known city categories in presentation order.
var Cities = []string{CityMetropolitian, CityUrban, CitySemiUrban}

// Festival flag values.
const (
	FestivalYes = "Yes"
	FestivalNo  = "No"
)

// OrderDateFormat is the layout of the Order_Date column.
const OrderDateFormat = "02-01-2006"

// TimeTakenPrefix is the fixed text that precedes the minute count in the
// Time_taken(min) column.
const TimeTakenPrefix = "(min) "
