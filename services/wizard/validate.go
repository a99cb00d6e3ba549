package wizard

import (
	"regexp"
	"strings"
	"time"

	"skybook/models"
)

var (
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	expiryRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	cvcRegex    = regexp.MustCompile(`^[0-9]+$`)
	cardRegex   = regexp.MustCompile(`^[0-9\s-]+$`)
)

// Passenger validation error codes. Field names mark missing values;
// email_format marks an email that is present but malformed.
const (
	ErrFieldFirstName   = "first_name"
	ErrFieldLastName    = "last_name"
	ErrFieldBirthDate   = "birth_date"
	ErrFieldGender      = "gender"
	ErrFieldEmail       = "email"
	ErrFieldEmailFormat = "email_format"
)

// ValidatePassenger returns the failing field names for one passenger record.
// Email is only collected for adults; middle name is always optional.
func ValidatePassenger(p models.Passenger, isAdult bool) []string {
	var errs []string
	if p.FirstName == "" {
		errs = append(errs, ErrFieldFirstName)
	}
	if p.LastName == "" {
		errs = append(errs, ErrFieldLastName)
	}
	if p.BirthDate == "" {
		errs = append(errs, ErrFieldBirthDate)
	}
	if p.Gender == "" {
		errs = append(errs, ErrFieldGender)
	}
	if isAdult {
		if p.Email == "" {
			errs = append(errs, ErrFieldEmail)
		} else if !emailRegex.MatchString(p.Email) {
			errs = append(errs, ErrFieldEmailFormat)
		}
	}
	return errs
}

// PassengersValid reports whether every adult and child record passes
// validation.
func PassengersValid(f models.PassengersForm) bool {
	for _, p := range f.Adults {
		if len(ValidatePassenger(p, true)) > 0 {
			return false
		}
	}
	for _, p := range f.Children {
		if len(ValidatePassenger(p, false)) > 0 {
			return false
		}
	}
	return true
}

// normalizePassengers unsets the terms checkbox when any passenger record is
// invalid. The acknowledgement can never stay set while the records behind it
// are broken.
func normalizePassengers(f *models.PassengersForm) {
	if f.TermsAccepted && !PassengersValid(*f) {
		f.TermsAccepted = false
	}
}

// ValidateBilling returns the failing field names for one billing record.
// Every phone present must be non-empty.
func ValidateBilling(b models.Billing) []string {
	var errs []string
	if b.Country == "" {
		errs = append(errs, "country")
	}
	if b.State == "" {
		errs = append(errs, "state")
	}
	if b.City == "" {
		errs = append(errs, "city")
	}
	if b.Address == "" {
		errs = append(errs, "address")
	}
	if b.ZipCode == "" {
		errs = append(errs, "zipCode")
	}
	if len(b.Phones) == 0 {
		errs = append(errs, "phones")
	}
	for _, phone := range b.Phones {
		if phone == "" {
			errs = append(errs, "phones")
			break
		}
	}
	return errs
}

// ValidCardNumber checks length (16-19 digits after stripping whitespace and
// dashes) and the Luhn checksum.
func ValidCardNumber(number string) bool {
	if !cardRegex.MatchString(number) {
		return false
	}
	clean := strings.NewReplacer(" ", "", "-", "").Replace(number)
	if len(clean) < 16 || len(clean) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(clean) - 1; i >= 0; i-- {
		digit := int(clean[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

// ValidExpiryDate checks the MM/YY pattern and that the card has not expired
// as of now, comparing two-digit years within the current century window.
func ValidExpiryDate(expiry string, now time.Time) bool {
	m := expiryRegex.FindStringSubmatch(expiry)
	if m == nil {
		return false
	}
	month := int(m[1][0]-'0')*10 + int(m[1][1]-'0')
	year := int(m[2][0]-'0')*10 + int(m[2][1]-'0')

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())

	if year < currentYear {
		return false
	}
	if year == currentYear && month < currentMonth {
		return false
	}
	return true
}

// ValidateCardDetails returns the failing field names for the card block.
func ValidateCardDetails(cd *models.CardDetails, now time.Time) []string {
	if cd == nil {
		return []string{"cardNumber", "cardholderName", "expiryDate", "cvc", "servicePhone"}
	}
	var errs []string
	if !ValidCardNumber(cd.CardNumber) {
		errs = append(errs, "cardNumber")
	}
	if cd.CardholderName == "" {
		errs = append(errs, "cardholderName")
	}
	if !ValidExpiryDate(cd.ExpiryDate, now) {
		errs = append(errs, "expiryDate")
	}
	if len(cd.CVC) < 3 || len(cd.CVC) > 4 || !cvcRegex.MatchString(cd.CVC) {
		errs = append(errs, "cvc")
	}
	if cd.ServicePhone == "" {
		errs = append(errs, "servicePhone")
	}
	return errs
}

// PaymentValid is the payment-step predicate: terms accepted, every billing
// record valid, and card details valid unless the crypto method skips them.
func PaymentValid(p models.PaymentForm, now time.Time) bool {
	if !p.TermsAgreement {
		return false
	}
	if len(p.Billing) == 0 {
		return false
	}
	for _, b := range p.Billing {
		if len(ValidateBilling(b)) > 0 {
			return false
		}
	}
	if p.PaymentMethod == models.PaymentMethodCrypto {
		return true
	}
	return len(ValidateCardDetails(p.CardDetails, now)) == 0
}

// StepValid derives the validity of one step from the form aggregate.
func StepValid(s *models.WizardSession, stepID int, now time.Time) bool {
	switch stepID {
	case models.StepItinerary:
		return s.Form.Itinerary.TermsAccepted
	case models.StepPassengers:
		return PassengersValid(s.Form.Passengers) && s.Form.Passengers.TermsAccepted
	case models.StepExtras:
		return s.Form.Extras.InsurancePlan != ""
	case models.StepPayment:
		return PaymentValid(s.Form.Payment, now)
	case models.StepOverview:
		return s.Form.Payment.TermsAccepted && s.Form.Payment.PaymentAccepted
	default:
		return false
	}
}
