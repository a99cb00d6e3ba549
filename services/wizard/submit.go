package wizard

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "skybook/database/repository/booking"
	templateRepo "skybook/database/repository/template"
	"skybook/models"

	"go.uber.org/zap"
)

// Submit finalizes the wizard: the session must sit on the overview step with
// its confirmations checked. The booking is persisted first; for the crypto
// method a gateway invoice is then requested with the lead passenger's and
// first billing record's contact details. An invoice failure leaves the
// booking in place and the session on the final step.
func (s *DefaultWizardService) Submit(ctx context.Context, sessionID string) (*SubmitResult, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.CurrentStep != models.StepOverview {
		return nil, ErrNotOnFinalStep
	}
	if !StepValid(sess, models.StepOverview, s.now()) {
		return nil, ErrStepNotValid
	}
	// The overview predicate only covers its own confirmations; the collected
	// form must pass the same checks as a direct submission, so a session that
	// skipped ahead cannot book with empty records.
	if !PassengersValid(sess.Form.Passengers) {
		return nil, ErrStepNotValid
	}
	if !PaymentValid(sess.Form.Payment, s.now()) {
		return nil, ErrStepNotValid
	}

	result, err := s.finalizeBooking(ctx, sess.Token, sess.Form)
	if err != nil {
		return nil, err
	}

	if err := s.Store.Delete(ctx, sessionID); err != nil {
		s.Logger.Warn("failed to discard submitted session", zap.String("sessionID", sessionID), zap.Error(err))
	}
	return result, nil
}

// CreateBooking is the direct submission path: the same validation, pricing
// and persistence as a wizard submit, driven from a single request body.
func (s *DefaultWizardService) CreateBooking(ctx context.Context, req models.BookingRequest) (*SubmitResult, error) {
	form := models.BookingForm{
		Passengers: req.Passengers,
		Extras:     req.Extras,
		Payment:    req.Payment,
	}
	normalizePayment(&form.Payment)

	// Resolve extras prices from the catalog rather than trusting the caller.
	form.Extras.InsurancePrice = InsurancePlanPrice(form.Extras.InsurancePlan)
	if form.Extras.IsFlexibleTicketSelected {
		form.Extras.FlexibleTicketPrice = FlexibleTicketPrice
	} else {
		form.Extras.FlexibleTicketPrice = 0
	}

	if !PassengersValid(form.Passengers) {
		return nil, ErrStepNotValid
	}
	if !PaymentValid(form.Payment, s.now()) {
		return nil, ErrStepNotValid
	}

	return s.finalizeBooking(ctx, req.Token, form)
}

func (s *DefaultWizardService) finalizeBooking(ctx context.Context, token string, form models.BookingForm) (*SubmitResult, error) {
	bundle, err := s.Templates.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, templateRepo.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	totalPrice := TotalPrice(BasePrice(bundle.Template), form.Extras, form.Payment)

	status := models.BookingStatusConfirmed
	if form.Payment.PaymentMethod == models.PaymentMethodCrypto {
		status = models.BookingStatusPaymentPending
	}

	booking := &models.Booking{
		TemplateToken: token,
		TotalPrice:    totalPrice,
		Passengers:    form.Passengers,
		Extras:        form.Extras,
		Payment:       form.Payment,
		Status:        status,
	}
	if err := s.Bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	result := &SubmitResult{
		BookingToken:  booking.BookingToken,
		TotalPrice:    totalPrice,
		PaymentMethod: form.Payment.PaymentMethod,
	}

	if form.Payment.PaymentMethod == models.PaymentMethodCard {
		result.RedirectURL = fmt.Sprintf("%s/payment/success?booking_token=%s", s.AppURL, token)
		s.Logger.Info("booking confirmed",
			zap.String("bookingToken", booking.BookingToken),
			zap.Float64("totalPrice", totalPrice))
		return result, nil
	}

	invoiceURL, err := s.createInvoice(ctx, booking, token)
	if err != nil {
		// The booking record stays; the customer can retry the payment.
		return nil, err
	}
	result.RedirectURL = invoiceURL

	s.Logger.Info("booking awaiting crypto payment",
		zap.String("bookingToken", booking.BookingToken),
		zap.Float64("totalPrice", totalPrice))
	return result, nil
}

func (s *DefaultWizardService) createInvoice(ctx context.Context, booking *models.Booking, token string) (string, error) {
	if len(booking.Passengers.Adults) == 0 {
		return "", fmt.Errorf("%w: no lead passenger on booking", ErrInvoiceCreation)
	}
	if len(booking.Payment.Billing) == 0 {
		return "", fmt.Errorf("%w: no billing record on booking", ErrInvoiceCreation)
	}
	lead := booking.Passengers.Adults[0]
	billing := booking.Payment.Billing[0]

	phone := ""
	if len(billing.Phones) > 0 {
		phone = billing.Phones[0]
	}

	result, err := s.Invoices.CreateInvoice(ctx, models.InvoiceRequest{
		OrderID:       booking.BookingToken,
		Amount:        booking.TotalPrice,
		CustomerEmail: lead.Email,
		CustomerPhone: phone,
		CustomerName:  fmt.Sprintf("%s %s", lead.FirstName, lead.LastName),
		BookingToken:  token,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvoiceCreation, err)
	}
	if !result.Success {
		return "", fmt.Errorf("%w: %s", ErrInvoiceCreation, result.Error)
	}
	return result.InvoiceURL, nil
}

// MarkPaymentStatus records a gateway callback outcome on the booking.
func (s *DefaultWizardService) MarkPaymentStatus(ctx context.Context, bookingToken, status string) error {
	if err := s.Bookings.UpdatePaymentStatus(ctx, bookingToken, status); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	return nil
}
