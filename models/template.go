package models

import "time"

// AirCompany carries the operating airline branding shown on an itinerary leg.
type AirCompany struct {
	Name string `json:"name" bson:"name"`
	Logo string `json:"logo" bson:"logo"`
}

// Flight is a single itinerary leg. Connection legs are nested under their
// parent flight and additionally flagged with IsConnection.
type Flight struct {
	ID                int        `json:"id" bson:"id"`
	FlightType        string     `json:"flight_type" bson:"flight_type"` // "departure" or "return"
	FromCity          string     `json:"from_city" bson:"from_city"`
	FromAirportCode   string     `json:"from_airport_code" bson:"from_airport_code"`
	ToCity            string     `json:"to_city" bson:"to_city"`
	ToAirportCode     string     `json:"to_airport_code" bson:"to_airport_code"`
	DepartureDate     string     `json:"departure_date" bson:"departure_date"`
	ArrivalDate       string     `json:"arrival_date" bson:"arrival_date"`
	TravelTimeHours   int        `json:"travel_time_hours" bson:"travel_time_hours"`
	TravelTimeMinutes int        `json:"travel_time_minutes" bson:"travel_time_minutes"`
	AirlineCode       string     `json:"airline_code" bson:"airline_code"`
	FlightNumber      string     `json:"flight_number" bson:"flight_number"`
	AircraftType      string     `json:"aircraft_type" bson:"aircraft_type"`
	CabinClass        string     `json:"cabin_class" bson:"cabin_class"`
	IsConnection      bool       `json:"is_connection" bson:"is_connection"`
	AirCompany        AirCompany `json:"air_company" bson:"air_company"`
	Connections       []Flight   `json:"connections" bson:"connections"`
}

// Company is the agency branding block attached to a template.
type Company struct {
	Name                 string `json:"name" bson:"name"`
	Email                string `json:"email" bson:"email"`
	Phone                string `json:"phone" bson:"phone"`
	Address              string `json:"address" bson:"address"`
	Website              string `json:"website" bson:"website"`
	Logo                 string `json:"logo" bson:"logo"`
	RepresentativeName   string `json:"representative_name" bson:"representative_name"`
	RepresentativeAvatar string `json:"representative_avatar" bson:"representative_avatar"`
}

// Template is the immutable server-built pricing bundle a customer opens by token.
// Prices are decimal strings as stored ("500.00"); the wizard parses them once at
// session start.
type Template struct {
	ID            int       `json:"id" bson:"id"`
	Token         string    `json:"token" bson:"token"`
	CustomerName  string    `json:"customer_name" bson:"customer_name"`
	HasReturn     bool      `json:"has_return" bson:"has_return"`
	AdultCount    int       `json:"adult_count" bson:"adult_count"`
	PricePerAdult string    `json:"price_per_adult" bson:"price_per_adult"`
	HasChildren   bool      `json:"has_children" bson:"has_children"`
	ChildrenCount int       `json:"children_count" bson:"children_count"`
	PricePerChild string    `json:"price_per_child" bson:"price_per_child"`
	TotalPrice    string    `json:"total_price" bson:"total_price"`
	Taxes         string    `json:"taxes" bson:"taxes"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// TemplateBundle is the full payload served to the wizard: template plus the
// company branding and flight itinerary it references.
type TemplateBundle struct {
	Template Template `json:"template" bson:"template"`
	Company  Company  `json:"company" bson:"company"`
	Flights  []Flight `json:"flights" bson:"flights"`
}
