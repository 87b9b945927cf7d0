package service

import (
	"errors"

	"alcyxob/fitplan/internal/domain"
)

var (
	ErrIdentityLocked         = errors.New("identity can no longer be changed")
	ErrIntakeAlreadyCompleted = errors.New("intake is already completed")
)

// AdvanceResult tells what an Advance call did.
type AdvanceResult string

const (
	AdvanceRefused   AdvanceResult = "refused"
	AdvanceMoved     AdvanceResult = "moved"
	AdvanceCompleted AdvanceResult = "completed"
)

// CompletionFunc runs generation when the last question is answered. A non-nil
// error leaves the collector on the last step.
type CompletionFunc func(identity domain.Identity, answers domain.AnswerSet) error

// IntakeCollector walks the identity step and then the question catalog in
// order. It never fails for missing answers; it refuses the transition.
type IntakeCollector struct {
	state      domain.IntakeSnapshot
	onComplete CompletionFunc
}

// NewIntakeCollector starts a fresh questionnaire at the identity step.
func NewIntakeCollector(onComplete CompletionFunc) *IntakeCollector {
	return RestoreIntakeCollector(domain.NewIntakeSnapshot(), onComplete)
}

// RestoreIntakeCollector resumes from a snapshot, clamping an out-of-range step.
func RestoreIntakeCollector(snap domain.IntakeSnapshot, onComplete CompletionFunc) *IntakeCollector {
	if snap.Step < domain.IdentityStep {
		snap.Step = domain.IdentityStep
	}
	if last := len(domain.Questions) - 1; snap.Step > last {
		snap.Step = last
	}
	return &IntakeCollector{state: snap, onComplete: onComplete}
}

func (c *IntakeCollector) Step() int                       { return c.state.Step }
func (c *IntakeCollector) Completed() bool                 { return c.state.Completed }
func (c *IntakeCollector) Identity() domain.Identity       { return c.state.Identity }
func (c *IntakeCollector) Answers() domain.AnswerSet       { return c.state.Answers }
func (c *IntakeCollector) Snapshot() domain.IntakeSnapshot { return c.state }

// CurrentQuestion returns the question at the current step; false on the
// identity step.
func (c *IntakeCollector) CurrentQuestion() (domain.Question, bool) {
	if c.state.Step == domain.IdentityStep {
		return domain.Question{}, false
	}
	return domain.Questions[c.state.Step], true
}

// SetIdentity replaces the identity while it is still editable.
func (c *IntakeCollector) SetIdentity(identity domain.Identity) error {
	if c.state.IdentityLocked || c.state.Completed {
		return ErrIdentityLocked
	}
	c.state.Identity = identity
	return nil
}

// Answer upserts an answer. It is accepted at any step and never moves the step.
// Answers are frozen once the intake is completed.
func (c *IntakeCollector) Answer(id domain.QuestionID, values ...string) error {
	if c.state.Completed {
		return ErrIntakeAlreadyCompleted
	}
	return c.state.Answers.Set(id, values...)
}

// CanAdvance reports whether Advance would be accepted.
func (c *IntakeCollector) CanAdvance() bool {
	if c.state.Step == domain.IdentityStep {
		return c.state.Identity.Complete()
	}
	if c.state.Completed && c.isLastStep() {
		return false
	}
	q, _ := c.CurrentQuestion()
	return c.state.Answers.Has(q.ID)
}

// Advance moves to the next step. On the last step it runs the completion
// callback synchronously and stays put.
func (c *IntakeCollector) Advance() (AdvanceResult, error) {
	if c.state.Completed && c.isLastStep() {
		return AdvanceRefused, ErrIntakeAlreadyCompleted
	}
	if !c.CanAdvance() {
		return AdvanceRefused, nil
	}

	if c.state.Step == domain.IdentityStep {
		c.state.IdentityLocked = true
		c.state.Step++
		return AdvanceMoved, nil
	}

	if !c.isLastStep() {
		c.state.Step++
		return AdvanceMoved, nil
	}

	if c.onComplete != nil {
		if err := c.onComplete(c.state.Identity, c.state.Answers); err != nil {
			return AdvanceRefused, err
		}
	}
	c.state.Completed = true
	return AdvanceCompleted, nil
}

// Retreat steps back, floored at the identity step. It reports whether the step
// changed.
func (c *IntakeCollector) Retreat() bool {
	if c.state.Step == domain.IdentityStep {
		return false
	}
	c.state.Step--
	return true
}

// markCompleted finalizes a restored questionnaire whose completion was
// recorded elsewhere. It refuses when an answer is missing.
func (c *IntakeCollector) markCompleted() bool {
	if !c.state.Answers.Complete() {
		return false
	}
	c.state.Completed = true
	c.state.IdentityLocked = true
	c.state.Step = len(domain.Questions) - 1
	return true
}

// Reset returns to a fresh questionnaire.
func (c *IntakeCollector) Reset() {
	c.state = domain.NewIntakeSnapshot()
}

func (c *IntakeCollector) isLastStep() bool {
	return c.state.Step == len(domain.Questions)-1
}
