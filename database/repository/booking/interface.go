package bookingRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"skybook/config"
	"skybook/database"
	"skybook/models"
)

// BookingRepository persists completed bookings and tracks their payment status.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByToken(ctx context.Context, bookingToken string) (*models.Booking, error)
	UpdatePaymentStatus(ctx context.Context, bookingToken, status string) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a new BookingRepository instance using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
