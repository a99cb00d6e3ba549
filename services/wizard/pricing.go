package wizard

import (
	"strconv"

	"skybook/models"
)

// Catalog prices for the extras step. The insurance tiers and the flexible
// ticket upgrade are priced independently of the base fare.
const (
	InsurancePriceStandard = 256.96
	InsurancePricePremium  = 321.20
	FlexibleTicketPrice    = 353.32
)

// InsurancePlanPrice resolves an insurance plan id to its price. Unknown plans
// and the declined-protection plan cost nothing.
func InsurancePlanPrice(plan string) float64 {
	switch plan {
	case models.InsurancePlanStandard:
		return InsurancePriceStandard
	case models.InsurancePlanPremium:
		return InsurancePricePremium
	default:
		return 0
	}
}

// TotalPrice computes the running total for the given extras and payment
// state. The base already aggregates adult and child fares and taxes upstream;
// taxes are display-only and never re-added here.
func TotalPrice(base float64, extras models.ExtrasForm, payment models.PaymentForm) float64 {
	total := base

	if extras.InsurancePlan != "" && extras.InsurancePlan != models.InsurancePlanNoProtection {
		total += extras.InsurancePrice
	}
	if extras.IsFlexibleTicketSelected {
		total += extras.FlexibleTicketPrice
	}
	if payment.TipAgreement && payment.Tip > 0 {
		total += payment.Tip
	}

	return total
}

// BasePrice parses the template's decimal-string total. A malformed price
// resolves to zero rather than failing the session.
func BasePrice(t models.Template) float64 {
	base, err := strconv.ParseFloat(t.TotalPrice, 64)
	if err != nil {
		return 0
	}
	return base
}

// RecomputeTotal refreshes the derived total on the session's payment form.
// Called after every extras or payment mutation; the total is never written
// any other way.
func RecomputeTotal(s *models.WizardSession) {
	s.Form.Payment.TotalPrice = TotalPrice(BasePrice(s.Bundle.Template), s.Form.Extras, s.Form.Payment)
}
