package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"skybook/models"
)

func validPassenger() models.Passenger {
	return models.Passenger{
		FirstName: "Ada",
		LastName:  "Lovelace",
		BirthDate: "1990-06-15",
		Gender:    "female",
		Email:     "ada@example.com",
	}
}

func TestValidatePassenger(t *testing.T) {
	t.Run("complete adult passes", func(t *testing.T) {
		assert.Empty(t, ValidatePassenger(validPassenger(), true))
	})

	t.Run("missing fields are reported by name", func(t *testing.T) {
		errs := ValidatePassenger(models.Passenger{}, true)
		assert.ElementsMatch(t, []string{"first_name", "last_name", "birth_date", "gender", "email"}, errs)
	})

	t.Run("middle name is optional", func(t *testing.T) {
		p := validPassenger()
		p.MiddleName = ""
		assert.Empty(t, ValidatePassenger(p, true))
	})

	t.Run("malformed email is email_format, not email", func(t *testing.T) {
		p := validPassenger()
		p.Email = "a@b"
		errs := ValidatePassenger(p, true)
		assert.Contains(t, errs, "email_format")
		assert.NotContains(t, errs, "email")
	})

	t.Run("children need no email", func(t *testing.T) {
		p := validPassenger()
		p.Email = ""
		assert.Empty(t, ValidatePassenger(p, false))
	})
}

func TestNormalizePassengersUnsetsTerms(t *testing.T) {
	form := models.PassengersForm{
		Adults:        []models.Passenger{validPassenger()},
		TermsAccepted: true,
	}
	normalizePassengers(&form)
	assert.True(t, form.TermsAccepted)

	// Breaking a record retracts the acknowledgement.
	form.Adults[0].LastName = ""
	normalizePassengers(&form)
	assert.False(t, form.TermsAccepted)
}

func validBilling() models.Billing {
	return models.Billing{
		Country: "US",
		State:   "NY",
		City:    "New York",
		Address: "1 Main St",
		ZipCode: "10001",
		Phones:  []string{"+1 555 0100"},
	}
}

func TestValidateBilling(t *testing.T) {
	assert.Empty(t, ValidateBilling(validBilling()))

	b := validBilling()
	b.City = ""
	assert.Contains(t, ValidateBilling(b), "city")

	b = validBilling()
	b.Phones = []string{"+1 555 0100", ""}
	assert.Contains(t, ValidateBilling(b), "phones")

	b = validBilling()
	b.Phones = nil
	assert.Contains(t, ValidateBilling(b), "phones")
}

func TestValidCardNumber(t *testing.T) {
	assert.True(t, ValidCardNumber("4111111111111111"), "Luhn-valid 16 digits")
	assert.True(t, ValidCardNumber("4111 1111 1111 1111"), "whitespace is stripped")
	assert.True(t, ValidCardNumber("4111-1111-1111-1111"), "dashes are stripped")
	assert.False(t, ValidCardNumber("4111111111111112"), "checksum failure")
	assert.False(t, ValidCardNumber("411111111111111"), "too short")
	assert.False(t, ValidCardNumber("41111111111111111111"), "too long")
	assert.False(t, ValidCardNumber("4111f11111111111"), "non-digit")
	assert.False(t, ValidCardNumber(""))
}

func TestValidExpiryDate(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

	assert.False(t, ValidExpiryDate("01/20", now), "past year")
	assert.False(t, ValidExpiryDate("07/26", now), "past month this year")
	assert.True(t, ValidExpiryDate("08/26", now), "current month")
	assert.True(t, ValidExpiryDate("12/30", now))
	assert.True(t, ValidExpiryDate("12/99", now), "well-formed future date against the real clock")
	assert.False(t, ValidExpiryDate("13/30", now), "month out of range")
	assert.False(t, ValidExpiryDate("1/30", now), "pattern requires two digits")
	assert.False(t, ValidExpiryDate("12-30", now))
	assert.False(t, ValidExpiryDate("", now))
}

func validCard() *models.CardDetails {
	return &models.CardDetails{
		CardNumber:     "4111111111111111",
		CardholderName: "Ada Lovelace",
		ExpiryDate:     "12/30",
		CVC:            "123",
		ServicePhone:   "+1 555 0100",
	}
}

func TestValidateCardDetails(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, ValidateCardDetails(validCard(), now))

	cd := validCard()
	cd.CVC = "12"
	assert.Contains(t, ValidateCardDetails(cd, now), "cvc")

	cd = validCard()
	cd.CVC = "12345"
	assert.Contains(t, ValidateCardDetails(cd, now), "cvc")

	cd = validCard()
	cd.CVC = "12a"
	assert.Contains(t, ValidateCardDetails(cd, now), "cvc")

	cd = validCard()
	cd.ExpiryDate = "01/20"
	assert.Contains(t, ValidateCardDetails(cd, now), "expiryDate")

	cd = validCard()
	cd.CardholderName = ""
	assert.Contains(t, ValidateCardDetails(cd, now), "cardholderName")

	errs := ValidateCardDetails(nil, now)
	assert.ElementsMatch(t, []string{"cardNumber", "cardholderName", "expiryDate", "cvc", "servicePhone"}, errs)
}

func TestPaymentValid(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

	card := models.PaymentForm{
		PaymentMethod:  models.PaymentMethodCard,
		TermsAgreement: true,
		Billing:        []models.Billing{validBilling()},
		CardDetails:    validCard(),
	}
	assert.True(t, PaymentValid(card, now))

	t.Run("terms are mandatory", func(t *testing.T) {
		p := card
		p.TermsAgreement = false
		assert.False(t, PaymentValid(p, now))
	})

	t.Run("invalid billing blocks", func(t *testing.T) {
		p := card
		p.Billing = []models.Billing{{}}
		assert.False(t, PaymentValid(p, now))
	})

	t.Run("card details required on card method", func(t *testing.T) {
		p := card
		p.CardDetails = nil
		assert.False(t, PaymentValid(p, now))
	})

	t.Run("crypto skips card checks", func(t *testing.T) {
		p := card
		p.PaymentMethod = models.PaymentMethodCrypto
		p.CardDetails = nil
		assert.True(t, PaymentValid(p, now))
	})
}

func TestStepValid(t *testing.T) {
	now := time.Now()
	sess := &models.WizardSession{
		Steps:       NewSteps(),
		CurrentStep: models.StepItinerary,
		Form: models.BookingForm{
			Passengers: models.PassengersForm{Adults: []models.Passenger{validPassenger()}},
			Extras:     models.ExtrasForm{InsurancePlan: models.InsurancePlanNoProtection},
		},
	}

	assert.False(t, StepValid(sess, models.StepItinerary, now))
	sess.Form.Itinerary.TermsAccepted = true
	assert.True(t, StepValid(sess, models.StepItinerary, now))

	assert.False(t, StepValid(sess, models.StepPassengers, now), "terms not yet accepted")
	sess.Form.Passengers.TermsAccepted = true
	assert.True(t, StepValid(sess, models.StepPassengers, now))

	assert.True(t, StepValid(sess, models.StepExtras, now), "declined protection is still a choice")
	sess.Form.Extras.InsurancePlan = ""
	assert.False(t, StepValid(sess, models.StepExtras, now))

	assert.False(t, StepValid(sess, models.StepOverview, now))
	sess.Form.Payment.TermsAccepted = true
	sess.Form.Payment.PaymentAccepted = true
	assert.True(t, StepValid(sess, models.StepOverview, now))

	assert.False(t, StepValid(sess, 0, now))
	assert.False(t, StepValid(sess, 6, now))
}
