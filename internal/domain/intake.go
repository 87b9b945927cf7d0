package domain

// IdentityStep is the intake step that captures Identity, before question 0.
const IdentityStep = -1

// IntakeSnapshot is the persisted position of the questionnaire.
type IntakeSnapshot struct {
	Step           int       `json:"step"`
	Completed      bool      `json:"completed"`
	IdentityLocked bool      `json:"identityLocked"`
	Identity       Identity  `json:"identity"`
	Answers        AnswerSet `json:"answers"`
}

// NewIntakeSnapshot returns the state of a questionnaire that has not started.
func NewIntakeSnapshot() IntakeSnapshot {
	return IntakeSnapshot{Step: IdentityStep}
}
