package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "skybook/database/repository/booking"
	templateRepo "skybook/database/repository/template"
	"skybook/models"
	"skybook/services/payment"
)

// DefaultWizardService implements WizardService on top of a session store,
// the template and booking repositories, and the crypto invoice client.
type DefaultWizardService struct {
	Templates templateRepo.TemplateRepository
	Bookings  bookingRepo.BookingRepository
	Store     SessionStore
	Invoices  payment.InvoiceClient
	Logger    *zap.Logger
	AppURL    string

	// Now is the clock used for card-expiry checks; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultWizardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// refreshValidity re-derives the current step's validity from the form
// aggregate and mirrors it into the step list, the explicit equivalent of the
// step view re-establishing its own validity when it takes over.
func (s *DefaultWizardService) refreshValidity(sess *models.WizardSession) {
	SetCurrentStepValid(sess, StepValid(sess, sess.CurrentStep, s.now()))
}

// StartSession resolves the template by token and opens a fresh wizard
// session sized from it: passenger slices match the template's counts, extras
// default to declined protection, payment starts on the card method with one
// empty billing record.
func (s *DefaultWizardService) StartSession(ctx context.Context, token string) (*models.WizardSession, error) {
	bundle, err := s.Templates.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, templateRepo.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	childCount := 0
	if bundle.Template.HasChildren {
		childCount = bundle.Template.ChildrenCount
	}

	sess := &models.WizardSession{
		SessionID:   uuid.New().String(),
		Token:       token,
		Bundle:      *bundle,
		Steps:       NewSteps(),
		CurrentStep: models.StepItinerary,
		Form: models.BookingForm{
			Itinerary: models.ItineraryForm{},
			Passengers: models.PassengersForm{
				Adults:   make([]models.Passenger, bundle.Template.AdultCount),
				Children: make([]models.Passenger, childCount),
			},
			Extras: models.ExtrasForm{
				InsurancePlan: models.InsurancePlanNoProtection,
			},
			Payment: models.PaymentForm{
				PaymentMethod: models.PaymentMethodCard,
				Billing:       []models.Billing{{Phones: []string{""}}},
			},
		},
	}

	RecomputeTotal(sess)
	s.refreshValidity(sess)

	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSession returns the current session state.
func (s *DefaultWizardService) GetSession(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.Store.Get(ctx, sessionID)
}

// CancelSession discards the session without submitting anything.
func (s *DefaultWizardService) CancelSession(ctx context.Context, sessionID string) error {
	return s.Store.Delete(ctx, sessionID)
}

// mutate runs fn against the loaded session, then recomputes the derived
// total and the current step's validity before saving.
func (s *DefaultWizardService) mutate(ctx context.Context, sessionID string, fn func(*models.WizardSession) error) (*models.WizardSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}

	RecomputeTotal(sess)
	s.refreshValidity(sess)

	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// UpdateItinerary replaces the itinerary acknowledgement.
func (s *DefaultWizardService) UpdateItinerary(ctx context.Context, sessionID string, form models.ItineraryForm) (*models.WizardSession, error) {
	return s.mutate(ctx, sessionID, func(sess *models.WizardSession) error {
		sess.Form.Itinerary = form
		return nil
	})
}

// UpdatePassengers replaces the passenger records, keeping the slices sized to
// the template's counts. An invalid record unsets the terms acknowledgement.
func (s *DefaultWizardService) UpdatePassengers(ctx context.Context, sessionID string, form models.PassengersForm) (*models.WizardSession, error) {
	return s.mutate(ctx, sessionID, func(sess *models.WizardSession) error {
		form.Adults = resizePassengers(form.Adults, len(sess.Form.Passengers.Adults))
		form.Children = resizePassengers(form.Children, len(sess.Form.Passengers.Children))
		normalizePassengers(&form)
		sess.Form.Passengers = form
		return nil
	})
}

func resizePassengers(list []models.Passenger, want int) []models.Passenger {
	if len(list) == want {
		return list
	}
	out := make([]models.Passenger, want)
	copy(out, list)
	return out
}

// UpdateExtras applies the extras selection, resolving prices from the catalog.
func (s *DefaultWizardService) UpdateExtras(ctx context.Context, sessionID string, update ExtrasUpdate) (*models.WizardSession, error) {
	return s.mutate(ctx, sessionID, func(sess *models.WizardSession) error {
		sess.Form.Extras = models.ExtrasForm{
			InsurancePlan:            update.InsurancePlan,
			InsurancePrice:           InsurancePlanPrice(update.InsurancePlan),
			IsFlexibleTicketSelected: update.IsFlexibleTicketSelected,
		}
		if update.IsFlexibleTicketSelected {
			sess.Form.Extras.FlexibleTicketPrice = FlexibleTicketPrice
		}
		return nil
	})
}

// normalizePayment keeps the payment form's structural invariants: a billing
// record always exists and card details only exist on the card method.
func normalizePayment(p *models.PaymentForm) {
	if p.PaymentMethod == "" {
		p.PaymentMethod = models.PaymentMethodCard
	}
	if p.PaymentMethod == models.PaymentMethodCrypto {
		p.CardDetails = nil
	}
	if len(p.Billing) == 0 {
		p.Billing = []models.Billing{{Phones: []string{""}}}
	}
	for i := range p.Billing {
		if len(p.Billing[i].Phones) == 0 {
			p.Billing[i].Phones = []string{""}
		}
	}
}

// UpdatePayment replaces the payment form. The derived total survives the
// replacement; it is recomputed, never taken from the caller.
func (s *DefaultWizardService) UpdatePayment(ctx context.Context, sessionID string, form models.PaymentForm) (*models.WizardSession, error) {
	return s.mutate(ctx, sessionID, func(sess *models.WizardSession) error {
		normalizePayment(&form)
		sess.Form.Payment = form
		return nil
	})
}

// UpdateCardDetails applies a card-field edit. These arrive coalesced through
// the debounced propagation path rather than per keystroke.
func (s *DefaultWizardService) UpdateCardDetails(ctx context.Context, sessionID string, details models.CardDetails) (*models.WizardSession, error) {
	return s.mutate(ctx, sessionID, func(sess *models.WizardSession) error {
		sess.Form.Payment.CardDetails = &details
		normalizePayment(&sess.Form.Payment)
		return nil
	})
}

// AddBillingPhone appends the optional second phone slot to a billing record.
func (s *DefaultWizardService) AddBillingPhone(ctx context.Context, sessionID string, billingIndex int) (*models.WizardSession, error) {
	return s.mutate(ctx, sessionID, func(sess *models.WizardSession) error {
		if billingIndex < 0 || billingIndex >= len(sess.Form.Payment.Billing) {
			return ErrBillingIndex
		}
		b := &sess.Form.Payment.Billing[billingIndex]
		if len(b.Phones) >= 2 {
			return ErrPhoneLimit
		}
		b.Phones = append(b.Phones, "")
		return nil
	})
}

// RemoveBillingPhone drops a phone slot, never going below the mandatory one.
func (s *DefaultWizardService) RemoveBillingPhone(ctx context.Context, sessionID string, billingIndex, phoneIndex int) (*models.WizardSession, error) {
	return s.mutate(ctx, sessionID, func(sess *models.WizardSession) error {
		if billingIndex < 0 || billingIndex >= len(sess.Form.Payment.Billing) {
			return ErrBillingIndex
		}
		b := &sess.Form.Payment.Billing[billingIndex]
		if len(b.Phones) <= 1 {
			return ErrPhoneRequired
		}
		if phoneIndex < 0 || phoneIndex >= len(b.Phones) {
			return ErrBillingIndex
		}
		b.Phones = append(b.Phones[:phoneIndex], b.Phones[phoneIndex+1:]...)
		return nil
	})
}

// Advance completes the current step and moves to the next one. The current
// step must have established its validity; the new step's validity is then
// derived from its own form slice.
func (s *DefaultWizardService) Advance(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.CurrentStep >= models.StepOverview {
		return nil, ErrAlreadyLastStep
	}
	if !sess.IsCurrentStepValid {
		return nil, ErrStepNotValid
	}

	AdvanceStep(sess, sess.CurrentStep)
	s.refreshValidity(sess)

	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Retreat moves one step back.
func (s *DefaultWizardService) Retreat(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.CurrentStep <= models.StepItinerary {
		return nil, ErrAlreadyFirstStep
	}

	RetreatStep(sess)
	s.refreshValidity(sess)

	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// JumpTo moves directly to stepID; steps after it become unknown-valid again.
func (s *DefaultWizardService) JumpTo(ctx context.Context, sessionID string, stepID int) (*models.WizardSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if stepID < models.StepItinerary || stepID > models.StepOverview {
		return nil, ErrStepOutOfRange
	}

	JumpToStep(sess, stepID)
	s.refreshValidity(sess)

	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ResetStep invalidates stepID and moves back to it.
func (s *DefaultWizardService) ResetStep(ctx context.Context, sessionID string, stepID int) (*models.WizardSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if stepID < models.StepItinerary || stepID > models.StepOverview {
		return nil, ErrStepOutOfRange
	}

	ResetStep(sess, stepID)
	s.refreshValidity(sess)

	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}
