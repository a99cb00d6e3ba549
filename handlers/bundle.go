// File: skybook/handlers/handlerBundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all your endpoint handlers into one struct.
type HandlerBundle struct {
	// Template endpoints
	GetTemplate gin.HandlerFunc

	// Wizard session endpoints
	StartSession       gin.HandlerFunc
	GetSession         gin.HandlerFunc
	CancelSession      gin.HandlerFunc
	UpdateItinerary    gin.HandlerFunc
	UpdatePassengers   gin.HandlerFunc
	UpdateExtras       gin.HandlerFunc
	UpdatePayment      gin.HandlerFunc
	UpdateCardDetails  gin.HandlerFunc
	AddBillingPhone    gin.HandlerFunc
	RemoveBillingPhone gin.HandlerFunc
	Advance            gin.HandlerFunc
	Retreat            gin.HandlerFunc
	JumpTo             gin.HandlerFunc
	ResetStep          gin.HandlerFunc
	Submit             gin.HandlerFunc

	// Booking endpoints
	CreateBooking gin.HandlerFunc

	// Payment endpoints
	GatewayCallback gin.HandlerFunc
	PaymentSuccess  gin.HandlerFunc
	PaymentFail     gin.HandlerFunc
	PaymentCancel   gin.HandlerFunc
}
