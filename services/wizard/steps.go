package wizard

import "skybook/models"

// NewSteps returns the fixed five-step list with step 1 current.
func NewSteps() []models.Step {
	return []models.Step{
		{ID: models.StepItinerary, Name: "Itinerary", Completed: false, Current: true},
		{ID: models.StepPassengers, Name: "Passenger(s) details", Completed: false, Current: false},
		{ID: models.StepExtras, Name: "Extras", Completed: false, Current: false},
		{ID: models.StepPayment, Name: "Payment Details", Completed: false, Current: false},
		{ID: models.StepOverview, Name: "Overview & Payment", Completed: false, Current: false},
	}
}

// AdvanceStep marks stepID completed and moves the session to stepID+1.
// The caller must have established the current step's validity; the transition
// itself does not re-validate. The validity flag is reset so the next step has
// to establish its own.
func AdvanceStep(s *models.WizardSession, stepID int) {
	for i := range s.Steps {
		switch s.Steps[i].ID {
		case stepID:
			s.Steps[i].Completed = true
			s.Steps[i].Current = false
		case stepID + 1:
			s.Steps[i].Current = true
		}
	}
	s.CurrentStep = stepID + 1
	s.IsCurrentStepValid = false
}

// RetreatStep moves the session one step back, leaving the completed flag of
// the target step untouched.
func RetreatStep(s *models.WizardSession) {
	target := s.CurrentStep - 1
	for i := range s.Steps {
		if s.Steps[i].ID == target {
			s.Steps[i].Current = true
		} else if s.Steps[i].ID == s.CurrentStep {
			s.Steps[i].Current = false
		}
	}
	s.CurrentStep = target
	s.IsCurrentStepValid = false
}

// ResetStep invalidates stepID and moves the session back to it. Used when a
// step's underlying data is externally invalidated. Only the target step's
// flags change; other steps keep theirs.
func ResetStep(s *models.WizardSession, stepID int) {
	for i := range s.Steps {
		if s.Steps[i].ID == stepID {
			s.Steps[i].Completed = false
			s.Steps[i].Current = false
		}
	}
	s.CurrentStep = stepID
	s.IsCurrentStepValid = false
}

// JumpToStep makes stepID current and clears the completed flag of every step
// after it; steps at or before the target keep theirs. Steps past the jump
// target become unknown-valid again and must be re-established on the way
// forward. The validity flag is left for the caller to re-derive from the
// target step's own form state.
func JumpToStep(s *models.WizardSession, stepID int) {
	for i := range s.Steps {
		if s.Steps[i].ID == stepID {
			s.Steps[i].Current = true
		} else {
			s.Steps[i].Current = false
			if s.Steps[i].ID > stepID {
				s.Steps[i].Completed = false
			}
		}
	}
	s.CurrentStep = stepID
}

// SetCurrentStepValid records the validity of the current step and mirrors it
// into that step's completed flag. This is the sole gate for the continue and
// book-now controls.
func SetCurrentStepValid(s *models.WizardSession, valid bool) {
	s.IsCurrentStepValid = valid
	for i := range s.Steps {
		if s.Steps[i].ID == s.CurrentStep {
			s.Steps[i].Completed = valid
		}
	}
}
