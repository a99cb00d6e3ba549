package wizard

import "errors"

// Sentinel errors surfaced by the wizard service.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrSessionNotFound  = errors.New("wizard session not found or expired")
	ErrStepNotValid     = errors.New("current step is not valid")
	ErrStepOutOfRange   = errors.New("step id out of range")
	ErrAlreadyFirstStep = errors.New("already on the first step")
	ErrAlreadyLastStep  = errors.New("already on the last step")
	ErrNotOnFinalStep   = errors.New("submission requires the final step")
	ErrBillingIndex     = errors.New("billing record index out of range")
	ErrPhoneLimit       = errors.New("billing record already has the maximum number of phones")
	ErrPhoneRequired    = errors.New("billing record must keep at least one phone")
	ErrInvoiceCreation  = errors.New("invoice creation failed")
)
