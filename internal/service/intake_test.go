package service

import (
	"errors"
	"testing"

	"alcyxob/fitplan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answerCurrent answers whatever question the collector is on.
func answerCurrent(t *testing.T, c *IntakeCollector, full domain.AnswerSet) {
	t.Helper()
	q, ok := c.CurrentQuestion()
	require.True(t, ok)
	require.NoError(t, c.Answer(q.ID, full.Values(q.ID)...))
}

func TestIntake_IdentityStepGate(t *testing.T) {
	c := NewIntakeCollector(nil)
	assert.Equal(t, domain.IdentityStep, c.Step())
	assert.False(t, c.CanAdvance())

	res, err := c.Advance()
	require.NoError(t, err)
	assert.Equal(t, AdvanceRefused, res)

	require.NoError(t, c.SetIdentity(domain.Identity{Name: "Ana", Phone: " ", Email: "ana@x.com"}))
	assert.False(t, c.CanAdvance())

	require.NoError(t, c.SetIdentity(anaIdentity))
	res, err = c.Advance()
	require.NoError(t, err)
	assert.Equal(t, AdvanceMoved, res)
	assert.Equal(t, 0, c.Step())

	assert.ErrorIs(t, c.SetIdentity(domain.Identity{Name: "Bob"}), ErrIdentityLocked)

	// Going back does not unlock it.
	assert.True(t, c.Retreat())
	assert.ErrorIs(t, c.SetIdentity(domain.Identity{Name: "Bob"}), ErrIdentityLocked)
	assert.Equal(t, anaIdentity, c.Identity())
}

func TestIntake_RefusesWithoutAnswer(t *testing.T) {
	c := NewIntakeCollector(nil)
	require.NoError(t, c.SetIdentity(anaIdentity))
	_, err := c.Advance()
	require.NoError(t, err)

	res, err := c.Advance()
	require.NoError(t, err)
	assert.Equal(t, AdvanceRefused, res)
	assert.Equal(t, 0, c.Step())

	// Answering a later question does not satisfy the current one.
	require.NoError(t, c.Answer(domain.QuestionGoal, "strength"))
	assert.False(t, c.CanAdvance())

	require.NoError(t, c.Answer(domain.QuestionAge, "18-25"))
	assert.True(t, c.CanAdvance())
	assert.Equal(t, 0, c.Step(), "answering never advances")
}

func TestIntake_MultiSelectNeedsAValue(t *testing.T) {
	c := RestoreIntakeCollector(domain.IntakeSnapshot{Step: 9, IdentityLocked: true, Identity: anaIdentity}, nil)
	q, _ := c.CurrentQuestion()
	require.Equal(t, domain.QuestionDietaryRestrictions, q.ID)

	require.NoError(t, c.Answer(q.ID))
	assert.False(t, c.CanAdvance())

	require.NoError(t, c.Answer(q.ID, "vegan", "gluten-free", "vegan"))
	assert.True(t, c.CanAdvance())
	assert.Equal(t, []string{"vegan", "gluten-free"}, c.Answers().DietaryRestrictions)
}

func TestIntake_InvalidAnswer(t *testing.T) {
	c := NewIntakeCollector(nil)
	assert.ErrorIs(t, c.Answer(domain.QuestionWeight, "heavy"), domain.ErrInvalidOption)
	assert.ErrorIs(t, c.Answer("shoeSize", "42"), domain.ErrUnknownQuestion)
	assert.ErrorIs(t, c.Answer(domain.QuestionWeight, "56-70", "71-85"), domain.ErrSingleValueExpected)
}

func TestIntake_FullWalkCompletes(t *testing.T) {
	full := sampleAnswers(t, nil)
	calls := 0
	c := NewIntakeCollector(func(identity domain.Identity, answers domain.AnswerSet) error {
		calls++
		assert.Equal(t, anaIdentity, identity)
		assert.Equal(t, full, answers)
		return nil
	})
	require.NoError(t, c.SetIdentity(anaIdentity))
	_, err := c.Advance()
	require.NoError(t, err)

	for i := 0; i < len(domain.Questions)-1; i++ {
		answerCurrent(t, c, full)
		res, err := c.Advance()
		require.NoError(t, err)
		require.Equal(t, AdvanceMoved, res)
	}
	assert.Equal(t, len(domain.Questions)-1, c.Step())

	answerCurrent(t, c, full)
	res, err := c.Advance()
	require.NoError(t, err)
	assert.Equal(t, AdvanceCompleted, res)
	assert.True(t, c.Completed())
	assert.Equal(t, len(domain.Questions)-1, c.Step(), "completion does not move past the last step")
	assert.Equal(t, 1, calls)

	res, err = c.Advance()
	assert.ErrorIs(t, err, ErrIntakeAlreadyCompleted)
	assert.Equal(t, AdvanceRefused, res)
	assert.Equal(t, 1, calls)

	assert.ErrorIs(t, c.Answer(domain.QuestionFrequency, "6"), ErrIntakeAlreadyCompleted)
	assert.Equal(t, full, c.Answers(), "answers are frozen after completion")
}

func TestIntake_CompletionFailureKeepsStep(t *testing.T) {
	boom := errors.New("boom")
	fail := true
	last := len(domain.Questions) - 1
	c := RestoreIntakeCollector(domain.IntakeSnapshot{
		Step:           last,
		IdentityLocked: true,
		Identity:       anaIdentity,
		Answers:        sampleAnswers(t, nil),
	}, func(domain.Identity, domain.AnswerSet) error {
		if fail {
			return boom
		}
		return nil
	})

	res, err := c.Advance()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, AdvanceRefused, res)
	assert.Equal(t, last, c.Step())
	assert.False(t, c.Completed())

	fail = false
	res, err = c.Advance()
	require.NoError(t, err)
	assert.Equal(t, AdvanceCompleted, res)
}

func TestIntake_RetreatFloor(t *testing.T) {
	c := RestoreIntakeCollector(domain.IntakeSnapshot{Step: 1, IdentityLocked: true}, nil)
	assert.True(t, c.Retreat())
	assert.True(t, c.Retreat())
	assert.Equal(t, domain.IdentityStep, c.Step())
	assert.False(t, c.Retreat())
	assert.Equal(t, domain.IdentityStep, c.Step())
}

func TestIntake_RestoreClampsStep(t *testing.T) {
	assert.Equal(t, domain.IdentityStep, RestoreIntakeCollector(domain.IntakeSnapshot{Step: -7}, nil).Step())
	assert.Equal(t, len(domain.Questions)-1, RestoreIntakeCollector(domain.IntakeSnapshot{Step: 99}, nil).Step())
}

func TestIntake_Reset(t *testing.T) {
	c := RestoreIntakeCollector(domain.IntakeSnapshot{Step: 4, Completed: true, IdentityLocked: true, Identity: anaIdentity}, nil)
	c.Reset()
	assert.Equal(t, domain.NewIntakeSnapshot(), c.Snapshot())
	assert.NoError(t, c.SetIdentity(anaIdentity))
}

func TestIntake_MarkCompleted(t *testing.T) {
	partial := RestoreIntakeCollector(domain.IntakeSnapshot{Step: 2, IdentityLocked: true}, nil)
	assert.False(t, partial.markCompleted())
	assert.False(t, partial.Completed())

	full := RestoreIntakeCollector(domain.IntakeSnapshot{Step: 0, Identity: anaIdentity, Answers: sampleAnswers(t, nil)}, nil)
	require.True(t, full.markCompleted())
	assert.True(t, full.Completed())
	assert.Equal(t, len(domain.Questions)-1, full.Step())
	assert.ErrorIs(t, full.SetIdentity(anaIdentity), ErrIdentityLocked)
}
