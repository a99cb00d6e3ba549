package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skybook/models"
)

func newTestSession() *models.WizardSession {
	return &models.WizardSession{
		Steps:       NewSteps(),
		CurrentStep: models.StepItinerary,
	}
}

// currentSteps returns the ids of all steps flagged current.
func currentSteps(s *models.WizardSession) []int {
	var ids []int
	for _, step := range s.Steps {
		if step.Current {
			ids = append(ids, step.ID)
		}
	}
	return ids
}

func stepByID(t *testing.T, s *models.WizardSession, id int) models.Step {
	t.Helper()
	for _, step := range s.Steps {
		if step.ID == id {
			return step
		}
	}
	t.Fatalf("step %d not found", id)
	return models.Step{}
}

func TestNewSteps(t *testing.T) {
	steps := NewSteps()
	require.Len(t, steps, 5)

	for i, step := range steps {
		assert.Equal(t, i+1, step.ID, "step ids are contiguous 1..5")
		assert.False(t, step.Completed)
		assert.Equal(t, step.ID == 1, step.Current)
	}
}

func TestAdvanceStep(t *testing.T) {
	s := newTestSession()
	s.IsCurrentStepValid = true

	AdvanceStep(s, 1)

	assert.Equal(t, 2, s.CurrentStep)
	assert.Equal(t, []int{2}, currentSteps(s), "exactly one current step")
	assert.True(t, stepByID(t, s, 1).Completed)
	assert.False(t, stepByID(t, s, 1).Current)
	assert.False(t, s.IsCurrentStepValid, "next step must re-establish validity")
}

func TestAdvanceStepWalksToFinal(t *testing.T) {
	s := newTestSession()
	for id := 1; id < 5; id++ {
		AdvanceStep(s, id)
		assert.Equal(t, id+1, s.CurrentStep)
		assert.Equal(t, []int{id + 1}, currentSteps(s))
	}
	for id := 1; id < 5; id++ {
		assert.True(t, stepByID(t, s, id).Completed)
	}
	assert.False(t, stepByID(t, s, 5).Completed)
}

func TestRetreatStep(t *testing.T) {
	s := newTestSession()
	AdvanceStep(s, 1)
	AdvanceStep(s, 2)
	s.IsCurrentStepValid = true

	RetreatStep(s)

	assert.Equal(t, 2, s.CurrentStep)
	assert.Equal(t, []int{2}, currentSteps(s))
	assert.True(t, stepByID(t, s, 2).Completed, "retreat leaves completed untouched")
	assert.False(t, s.IsCurrentStepValid)
}

func TestResetStep(t *testing.T) {
	s := newTestSession()
	AdvanceStep(s, 1)
	AdvanceStep(s, 2)
	s.IsCurrentStepValid = true

	ResetStep(s, 2)

	assert.Equal(t, 2, s.CurrentStep)
	got := stepByID(t, s, 2)
	assert.False(t, got.Completed)
	assert.False(t, got.Current)
	assert.True(t, stepByID(t, s, 1).Completed, "earlier steps keep their flag")
	assert.False(t, s.IsCurrentStepValid)
}

func TestResetStepTouchesOnlyTarget(t *testing.T) {
	s := newTestSession()
	AdvanceStep(s, 1)
	AdvanceStep(s, 2)

	ResetStep(s, 2)

	assert.Equal(t, 2, s.CurrentStep)
	got := stepByID(t, s, 2)
	assert.False(t, got.Completed)
	assert.False(t, got.Current)
	// Other steps are left as they were, including the one that was current.
	assert.True(t, stepByID(t, s, 3).Current)
	assert.True(t, stepByID(t, s, 1).Completed)
}

func TestJumpToStepClearsLaterCompleted(t *testing.T) {
	s := newTestSession()
	AdvanceStep(s, 1)
	AdvanceStep(s, 2)
	AdvanceStep(s, 3)
	AdvanceStep(s, 4)
	require.Equal(t, 5, s.CurrentStep)

	JumpToStep(s, 3)

	assert.Equal(t, 3, s.CurrentStep)
	assert.Equal(t, []int{3}, currentSteps(s))

	// Steps at or before the target keep completed, later ones lose it.
	assert.True(t, stepByID(t, s, 1).Completed)
	assert.True(t, stepByID(t, s, 2).Completed)
	assert.True(t, stepByID(t, s, 3).Completed)
	assert.False(t, stepByID(t, s, 4).Completed)
	assert.False(t, stepByID(t, s, 5).Completed)
}

func TestJumpToStepLeavesValidityFlag(t *testing.T) {
	s := newTestSession()
	AdvanceStep(s, 1)
	s.IsCurrentStepValid = true

	JumpToStep(s, 1)

	assert.True(t, s.IsCurrentStepValid, "jump itself does not reset the flag")
}

func TestSetCurrentStepValidMirrorsCompleted(t *testing.T) {
	s := newTestSession()

	SetCurrentStepValid(s, true)
	assert.True(t, s.IsCurrentStepValid)
	assert.True(t, stepByID(t, s, 1).Completed)

	SetCurrentStepValid(s, false)
	assert.False(t, s.IsCurrentStepValid)
	assert.False(t, stepByID(t, s, 1).Completed)
}
