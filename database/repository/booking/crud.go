package bookingRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"skybook/models"
)

// ErrNotFound is returned when no booking exists for the given token.
var ErrNotFound = errors.New("booking not found")

// Create inserts a new booking, assigning its server-side token.
func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if booking.BookingToken == "" {
		booking.BookingToken = uuid.New().String()
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, booking)
	return err
}

// GetByToken returns a booking by its server-assigned token.
func (r *mongoBookingRepo) GetByToken(ctx context.Context, bookingToken string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"booking_token": bookingToken}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// UpdatePaymentStatus records the payment status reported by the gateway
// callback for an existing booking.
func (r *mongoBookingRepo) UpdatePaymentStatus(ctx context.Context, bookingToken, status string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"booking_token": bookingToken},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
