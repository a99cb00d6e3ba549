package models

import "time"

// Booking payment statuses.
const (
	BookingStatusConfirmed      = "confirmed"       // card path, settled out of band
	BookingStatusPaymentPending = "payment_pending" // crypto path, awaiting gateway callback
	BookingStatusPaymentFailed  = "payment_failed"
)

// Booking is the persisted record assembled from a completed wizard session.
type Booking struct {
	BookingToken  string         `bson:"booking_token" json:"booking_token"` // server-assigned identifier (UUID)
	TemplateToken string         `bson:"template_token" json:"template_token"`
	TotalPrice    float64        `bson:"total_price" json:"total_price"`
	Passengers    PassengersForm `bson:"passengers" json:"passengers"`
	Extras        ExtrasForm     `bson:"extras" json:"extras"`
	Payment       PaymentForm    `bson:"payment" json:"payment"`
	Status        string         `bson:"status" json:"status"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updated_at"`
}

// BookingRequest is the body of a direct booking submission.
type BookingRequest struct {
	Token      string         `json:"token"`
	TotalPrice float64        `json:"total_price"`
	Passengers PassengersForm `json:"passengers"`
	Extras     ExtrasForm     `json:"extras"`
	Payment    PaymentForm    `json:"payment"`
}
