package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "skybook/database/repository/booking"
	"skybook/models"
	"skybook/services/wizard"
)

// PaymentHandler serves the gateway callback and the post-payment return pages.
type PaymentHandler struct {
	Svc    wizard.WizardService
	Logger *zap.Logger
}

// NewPaymentHandler returns a PaymentHandler.
func NewPaymentHandler(svc wizard.WizardService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Svc: svc, Logger: logger}
}

// GatewayCallback handles POST /api/payment/callback. The gateway notifies
// the final state of an invoice here; the booking's payment status is
// reconciled and the callback acknowledged. The booking record is the source
// of truth afterwards, not the customer's redirect.
func (h *PaymentHandler) GatewayCallback(c *gin.Context) {
	bookingToken := c.Query("booking_token")
	status := c.Query("status")

	if bookingToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing booking_token"})
		return
	}

	var bookingStatus string
	switch status {
	case "success":
		bookingStatus = models.BookingStatusConfirmed
	case "fail":
		bookingStatus = models.BookingStatusPaymentFailed
	default:
		// Interim notification; acknowledge without touching the booking.
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Webhook processed successfully"})
		return
	}

	if err := h.Svc.MarkPaymentStatus(c.Request.Context(), bookingToken, bookingStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "booking not found"})
			return
		}
		h.Logger.Error("failed to process payment callback",
			zap.String("bookingToken", bookingToken), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to process webhook"})
		return
	}

	h.Logger.Info("payment callback processed",
		zap.String("bookingToken", bookingToken), zap.String("status", bookingStatus))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Webhook processed successfully"})
}

// PaymentSuccess handles GET /payment/success.
func (h *PaymentHandler) PaymentSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"message":       "Your booking is confirmed. A confirmation email is on its way.",
		"booking_token": c.Query("booking_token"),
	})
}

// PaymentFail handles GET /payment/fail.
func (h *PaymentHandler) PaymentFail(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "failed",
		"message":       "The payment could not be completed. Your booking is kept; you can retry the payment.",
		"booking_token": c.Query("booking_token"),
	})
}

// PaymentCancel handles GET /payment/cancel.
func (h *PaymentHandler) PaymentCancel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "cancelled",
		"message": "The payment was cancelled.",
	})
}
