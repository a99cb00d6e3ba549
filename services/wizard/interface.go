package wizard

import (
	"context"

	"skybook/models"
)

// ExtrasUpdate is the client's extras selection; prices are resolved
// server-side from the catalog.
type ExtrasUpdate struct {
	InsurancePlan            string `json:"insurancePlan"`
	IsFlexibleTicketSelected bool   `json:"isFlexibleTicketSelected"`
}

// SubmitResult is the outcome of a final submission: the persisted booking's
// token and where to send the customer next.
type SubmitResult struct {
	BookingToken  string  `json:"booking_token"`
	TotalPrice    float64 `json:"total_price"`
	PaymentMethod string  `json:"payment_method"`
	RedirectURL   string  `json:"redirect_url"`
}

// WizardService drives a customer's booking wizard session: the named update
// operations are the only mutation surface of the form aggregate, and every
// mutation recomputes the derived total and the current step's validity.
type WizardService interface {
	StartSession(ctx context.Context, token string) (*models.WizardSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.WizardSession, error)
	CancelSession(ctx context.Context, sessionID string) error

	UpdateItinerary(ctx context.Context, sessionID string, form models.ItineraryForm) (*models.WizardSession, error)
	UpdatePassengers(ctx context.Context, sessionID string, form models.PassengersForm) (*models.WizardSession, error)
	UpdateExtras(ctx context.Context, sessionID string, update ExtrasUpdate) (*models.WizardSession, error)
	UpdatePayment(ctx context.Context, sessionID string, form models.PaymentForm) (*models.WizardSession, error)
	UpdateCardDetails(ctx context.Context, sessionID string, details models.CardDetails) (*models.WizardSession, error)

	AddBillingPhone(ctx context.Context, sessionID string, billingIndex int) (*models.WizardSession, error)
	RemoveBillingPhone(ctx context.Context, sessionID string, billingIndex, phoneIndex int) (*models.WizardSession, error)

	Advance(ctx context.Context, sessionID string) (*models.WizardSession, error)
	Retreat(ctx context.Context, sessionID string) (*models.WizardSession, error)
	JumpTo(ctx context.Context, sessionID string, stepID int) (*models.WizardSession, error)
	ResetStep(ctx context.Context, sessionID string, stepID int) (*models.WizardSession, error)

	Submit(ctx context.Context, sessionID string) (*SubmitResult, error)
	CreateBooking(ctx context.Context, req models.BookingRequest) (*SubmitResult, error)
	MarkPaymentStatus(ctx context.Context, bookingToken, status string) error
}
