package models

// Step ids for the five wizard steps, in order.
const (
	StepItinerary  = 1
	StepPassengers = 2
	StepExtras     = 3
	StepPayment    = 4
	StepOverview   = 5
)

// Step is one entry of the wizard's step list. Exactly one step carries
// Current=true at any time.
type Step struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
}

// Passenger is one traveller's details. Email is only collected for adults.
type Passenger struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	BirthDate  string `json:"birth_date"` // ISO date string
	Gender     string `json:"gender"`     // male, female or other
	Email      string `json:"email"`
}

// ItineraryForm holds the single acknowledgement collected on step 1.
type ItineraryForm struct {
	TermsAccepted bool `json:"terms_accepted"`
}

// PassengersForm holds the per-traveller records, sized from the template's
// adult and children counts at session start.
type PassengersForm struct {
	Adults        []Passenger `json:"adults"`
	Children      []Passenger `json:"children"`
	TermsAccepted bool        `json:"terms_accepted"`
}

// Insurance plan identifiers offered on the extras step.
const (
	InsurancePlanStandard     = "standard"
	InsurancePlanPremium      = "premium"
	InsurancePlanNoProtection = "no-protection"
)

// ExtrasForm holds the optional add-on selections.
type ExtrasForm struct {
	InsurancePlan            string  `json:"insurancePlan"`
	InsurancePrice           float64 `json:"insurancePrice"`
	IsFlexibleTicketSelected bool    `json:"isFlexibleTicketSelected"`
	FlexibleTicketPrice      float64 `json:"flexibleTicketPrice"`
}

// Billing is one postal/contact address block. Phones carries one mandatory
// number and optionally a second one, never more.
type Billing struct {
	Country string   `json:"country"`
	State   string   `json:"state"`
	City    string   `json:"city"`
	Address string   `json:"address"`
	ZipCode string   `json:"zipCode"`
	Phones  []string `json:"phones"`
}

// CardDetails is collected only when the card payment method is selected.
type CardDetails struct {
	CardNumber     string `json:"cardNumber"`
	CardholderName string `json:"cardholderName"`
	ExpiryDate     string `json:"expiryDate"` // MM/YY
	CVC            string `json:"cvc"`
	ServicePhone   string `json:"servicePhone"`
}

// Payment methods accepted on the payment step.
const (
	PaymentMethodCard   = "card"
	PaymentMethodCrypto = "crypto"
)

// PaymentForm holds the payment-step state. TotalPrice is derived by the
// pricing calculator on every extras/payment mutation and is never written
// directly. CardDetails is nil whenever PaymentMethod is crypto.
type PaymentForm struct {
	PaymentMethod   string       `json:"paymentMethod"`
	Tip             float64      `json:"tip"`
	TipAgreement    bool         `json:"tipAgreement"`
	TermsAgreement  bool         `json:"termsAgreement"`
	TermsAccepted   bool         `json:"termsAccepted"`
	PaymentAccepted bool         `json:"paymentAccepted"`
	Billing         []Billing    `json:"billing"`
	CardDetails     *CardDetails `json:"cardDetails,omitempty"`
	TotalPrice      float64      `json:"totalPrice"`
}

// BookingForm is the mutable aggregate collected across the five steps.
type BookingForm struct {
	Itinerary  ItineraryForm  `json:"itinerary"`
	Passengers PassengersForm `json:"passengers"`
	Extras     ExtrasForm     `json:"extras"`
	Payment    PaymentForm    `json:"payment"`
}

// WizardSession is one customer's in-flight booking: the immutable template
// bundle, the step list, the form aggregate and the validity gate for the
// current step. Sessions live in the session store for the duration of one
// browsing session and are never persisted beyond it.
type WizardSession struct {
	SessionID          string         `json:"sessionID"`
	Token              string         `json:"token"`
	Bundle             TemplateBundle `json:"bundle"`
	Steps              []Step         `json:"steps"`
	CurrentStep        int            `json:"currentStep"`
	IsCurrentStepValid bool           `json:"isCurrentStepValid"`
	Form               BookingForm    `json:"form"`
}
