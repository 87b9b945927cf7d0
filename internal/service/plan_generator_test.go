package service

import (
	"errors"
	"testing"

	"alcyxob/fitplan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanGenerator_TwelveMonthsOnlyFirstUnlocked(t *testing.T) {
	plans, err := NewPlanGenerator().Generate(sampleAnswers(t, nil))
	require.NoError(t, err)
	require.Len(t, plans, domain.PlanMonths)

	for i, p := range plans {
		assert.Equal(t, i+1, p.Month)
		assert.Equal(t, i == 0, p.Unlocked, "month %d", p.Month)
		assert.Nil(t, p.RenewedAt)
	}
	assert.Equal(t, 1, domain.UnlockFrontier(plans))
}

func TestPlanGenerator_Deterministic(t *testing.T) {
	answers := sampleAnswers(t, map[domain.QuestionID]string{domain.QuestionGoal: "muscle-gain"})
	a, err := NewPlanGenerator().Generate(answers)
	require.NoError(t, err)
	b, err := NewPlanGenerator().Generate(answers)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPlanGenerator_Incomplete(t *testing.T) {
	_, err := NewPlanGenerator().Generate(domain.AnswerSet{})
	assert.ErrorIs(t, err, ErrIncompleteAnswers)
}

type failingDiet struct{ failAt int }

func (f failingDiet) DietPlan(answers domain.AnswerSet, month int) (domain.DietPlan, error) {
	if month == f.failAt {
		return domain.DietPlan{}, errors.New("no data")
	}
	return domain.DietPlan{DailyCalories: 1}, nil
}

func TestPlanGenerator_StrategyOverrideAndFailure(t *testing.T) {
	answers := sampleAnswers(t, nil)

	plans, err := NewPlanGenerator(WithDietStrategy(failingDiet{})).Generate(answers)
	require.NoError(t, err)
	assert.Equal(t, 1, plans[5].DietPlan.DailyCalories)

	_, err = NewPlanGenerator(WithDietStrategy(failingDiet{failAt: 7})).Generate(answers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "month 7")
}

func TestDefaultWorkoutStrategy(t *testing.T) {
	answers := sampleAnswers(t, map[domain.QuestionID]string{
		domain.QuestionFrequency:      "4",
		domain.QuestionTimePerSession: "45",
	})

	tests := []struct {
		month int
		phase string
	}{
		{1, "adaptation"}, {3, "adaptation"}, {4, "hypertrophy"},
		{7, "strength"}, {10, "consolidation"}, {12, "consolidation"},
	}
	for _, tt := range tests {
		plan, err := defaultWorkoutStrategy{}.WorkoutPlan(answers, tt.month)
		require.NoError(t, err)
		assert.Equal(t, tt.phase, plan.Phase, "month %d", tt.month)
		assert.Equal(t, 4, plan.SessionsPerWeek)
		assert.Equal(t, 4, plan.DeloadWeek)
		require.Len(t, plan.Weekly, 4)
		assert.Len(t, plan.RestDays, 3)
		assert.Equal(t, 45, plan.Weekly[0].Minutes)
	}

	plan, err := defaultWorkoutStrategy{}.WorkoutPlan(answers, 2)
	require.NoError(t, err)
	assert.Equal(t, "m2-w1", plan.Weekly[0].ID)
	assert.Equal(t, "m2-w4", plan.Weekly[3].ID)

	_, err = defaultWorkoutStrategy{}.WorkoutPlan(answers, 13)
	assert.ErrorIs(t, err, ErrMonthOutOfRange)
}

func TestDefaultDietStrategy(t *testing.T) {
	answers := sampleAnswers(t, map[domain.QuestionID]string{domain.QuestionGoal: "muscle-gain"})
	require.NoError(t, answers.Set(domain.QuestionDietaryRestrictions, "vegan", "none"))

	plan, err := defaultDietStrategy{}.DietPlan(answers, 1)
	require.NoError(t, err)
	assert.Equal(t, 2210, plan.DailyCalories) // 63 kg * 35 kcal
	assert.Len(t, plan.Meals, 5)
	assert.Equal(t, "m1-meal1", plan.Meals[0].ID)
	assert.Equal(t, []string{"vegan"}, plan.Restrictions)

	maint, err := defaultDietStrategy{}.DietPlan(sampleAnswers(t, nil), 3)
	require.NoError(t, err)
	assert.Len(t, maint.Meals, 4)
	assert.Equal(t, "m3-meal4", maint.Meals[3].ID)
}

func TestDefaultHydrationStrategy(t *testing.T) {
	heavy := sampleAnswers(t, map[domain.QuestionID]string{
		domain.QuestionWeight:        "86-100",
		domain.QuestionActivityLevel: "active",
	})
	first, err := defaultHydrationStrategy{}.HydrationPlan(heavy, 1)
	require.NoError(t, err)
	assert.Equal(t, 3250, first.DailyGoalMl) // 93 kg * 35 ml = 3255 -> 3250

	last, err := defaultHydrationStrategy{}.HydrationPlan(heavy, 12)
	require.NoError(t, err)
	assert.Equal(t, 3250+3*250, last.DailyGoalMl)

	light := sampleAnswers(t, map[domain.QuestionID]string{
		domain.QuestionWeight:             "40-55",
		domain.QuestionActivityLevel:      "sedentary",
		domain.QuestionCurrentWaterIntake: "0-1",
	})
	plan, err := defaultHydrationStrategy{}.HydrationPlan(light, 12)
	require.NoError(t, err)
	assert.Equal(t, 2000, plan.DailyGoalMl)
	assert.Len(t, plan.Reminders, 7)
}
