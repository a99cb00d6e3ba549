package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skybook/models"
	"skybook/services/wizard"
)

// BookingHandler exposes the direct booking submission endpoint.
type BookingHandler struct {
	Svc    wizard.WizardService
	Logger *zap.Logger
}

// NewBookingHandler returns a BookingHandler.
func NewBookingHandler(svc wizard.WizardService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// CreateBooking handles POST /api/bookings. The response keeps the
// success-flag envelope the wizard front end keys on; a failed submission is
// reported in-band rather than as a bare status code.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Svc.CreateBooking(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrTemplateNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "template not found"})
		case errors.Is(err, wizard.ErrStepNotValid):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": "booking data failed validation"})
		case errors.Is(err, wizard.ErrInvoiceCreation):
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		default:
			h.Logger.Error("booking submission failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "an error occurred while booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"booking_token": result.BookingToken,
			"total_price":   result.TotalPrice,
			"redirect_url":  result.RedirectURL,
		},
	})
}
