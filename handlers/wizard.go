package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skybook/models"
	"skybook/services/wizard"
	"skybook/utils"
)

// paymentEditQuietPeriod is how long a burst of card-field edits may pause
// before it is applied to the session.
const paymentEditQuietPeriod = 500 * time.Millisecond

// WizardHandler exposes the booking wizard session API.
type WizardHandler struct {
	Svc      wizard.WizardService
	Logger   *zap.Logger
	Debounce *utils.Debouncer
}

// NewWizardHandler wires a wizard handler with its debounced edit path.
func NewWizardHandler(svc wizard.WizardService, logger *zap.Logger) *WizardHandler {
	return &WizardHandler{
		Svc:      svc,
		Logger:   logger,
		Debounce: utils.NewDebouncer(paymentEditQuietPeriod),
	}
}

func contextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// wizardError maps service errors onto HTTP responses.
func (h *WizardHandler) wizardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, wizard.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
	case errors.Is(err, wizard.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "wizard session not found or expired"})
	case errors.Is(err, wizard.ErrStepNotValid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "current step is not valid"})
	case errors.Is(err, wizard.ErrStepOutOfRange),
		errors.Is(err, wizard.ErrAlreadyFirstStep),
		errors.Is(err, wizard.ErrAlreadyLastStep),
		errors.Is(err, wizard.ErrNotOnFinalStep),
		errors.Is(err, wizard.ErrBillingIndex),
		errors.Is(err, wizard.ErrPhoneLimit),
		errors.Is(err, wizard.ErrPhoneRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, wizard.ErrInvoiceCreation):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		h.Logger.Error("wizard operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// StartSession handles POST /api/wizard/:token/session.
func (h *WizardHandler) StartSession(c *gin.Context) {
	sess, err := h.Svc.StartSession(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// GetSession handles GET /api/wizard/session/:sessionID.
func (h *WizardHandler) GetSession(c *gin.Context) {
	sess, err := h.Svc.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// CancelSession handles DELETE /api/wizard/session/:sessionID.
func (h *WizardHandler) CancelSession(c *gin.Context) {
	h.Debounce.Cancel(c.Param("sessionID"))
	if err := h.Svc.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateItinerary handles PUT .../itinerary.
func (h *WizardHandler) UpdateItinerary(c *gin.Context) {
	var form models.ItineraryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sess, err := h.Svc.UpdateItinerary(c.Request.Context(), c.Param("sessionID"), form)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// UpdatePassengers handles PUT .../passengers.
func (h *WizardHandler) UpdatePassengers(c *gin.Context) {
	var form models.PassengersForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sess, err := h.Svc.UpdatePassengers(c.Request.Context(), c.Param("sessionID"), form)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// UpdateExtras handles PUT .../extras.
func (h *WizardHandler) UpdateExtras(c *gin.Context) {
	var update wizard.ExtrasUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sess, err := h.Svc.UpdateExtras(c.Request.Context(), c.Param("sessionID"), update)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// UpdatePayment handles PUT .../payment. A full payment update applies any
// pending card-field edits first so nothing is lost or reordered.
func (h *WizardHandler) UpdatePayment(c *gin.Context) {
	var form models.PaymentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	h.Debounce.Flush(c.Param("sessionID"))
	sess, err := h.Svc.UpdatePayment(c.Request.Context(), c.Param("sessionID"), form)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// UpdateCardDetails handles PATCH .../payment/details. Card-field edits arrive
// per keystroke; only the last edit within the quiet period is applied.
func (h *WizardHandler) UpdateCardDetails(c *gin.Context) {
	var details models.CardDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sessionID := c.Param("sessionID")

	h.Debounce.Trigger(sessionID, func() {
		// Detached from the request; the edit lands after the quiet period.
		ctx, cancel := contextWithTimeout()
		defer cancel()
		if _, err := h.Svc.UpdateCardDetails(ctx, sessionID, details); err != nil {
			h.Logger.Warn("debounced card update failed", zap.String("sessionID", sessionID), zap.Error(err))
		}
	})
	c.JSON(http.StatusAccepted, gin.H{"accepted": true})
}

// AddBillingPhone handles POST .../billing/:index/phones.
func (h *WizardHandler) AddBillingPhone(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid billing index"})
		return
	}
	sess, err := h.Svc.AddBillingPhone(c.Request.Context(), c.Param("sessionID"), index)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// RemoveBillingPhone handles DELETE .../billing/:index/phones/:phoneIndex.
func (h *WizardHandler) RemoveBillingPhone(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid billing index"})
		return
	}
	phoneIndex, err := strconv.Atoi(c.Param("phoneIndex"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone index"})
		return
	}
	sess, err := h.Svc.RemoveBillingPhone(c.Request.Context(), c.Param("sessionID"), index, phoneIndex)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Advance handles POST .../advance.
func (h *WizardHandler) Advance(c *gin.Context) {
	h.Debounce.Flush(c.Param("sessionID"))
	sess, err := h.Svc.Advance(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Retreat handles POST .../back.
func (h *WizardHandler) Retreat(c *gin.Context) {
	sess, err := h.Svc.Retreat(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// JumpTo handles POST .../goto/:stepId.
func (h *WizardHandler) JumpTo(c *gin.Context) {
	stepID, err := strconv.Atoi(c.Param("stepId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid step id"})
		return
	}
	sess, err := h.Svc.JumpTo(c.Request.Context(), c.Param("sessionID"), stepID)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// ResetStep handles POST .../reset/:stepId.
func (h *WizardHandler) ResetStep(c *gin.Context) {
	stepID, err := strconv.Atoi(c.Param("stepId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid step id"})
		return
	}
	sess, err := h.Svc.ResetStep(c.Request.Context(), c.Param("sessionID"), stepID)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Submit handles POST .../submit: persists the booking and, for the crypto
// method, returns the gateway invoice URL to redirect to.
func (h *WizardHandler) Submit(c *gin.Context) {
	sessionID := c.Param("sessionID")
	h.Debounce.Flush(sessionID)

	result, err := h.Svc.Submit(c.Request.Context(), sessionID)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}
