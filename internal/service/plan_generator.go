package service

import (
	"fmt"

	"alcyxob/fitplan/internal/domain"
)

// PlanGenerator builds the twelve-month plan calendar from a finished intake.
type PlanGenerator interface {
	Generate(answers domain.AnswerSet) ([]domain.MonthlyPlan, error)
}

// PlanGeneratorOption swaps one of the per-month strategies.
type PlanGeneratorOption func(*planGenerator)

func WithWorkoutStrategy(s WorkoutStrategy) PlanGeneratorOption {
	return func(g *planGenerator) { g.workout = s }
}

func WithDietStrategy(s DietStrategy) PlanGeneratorOption {
	return func(g *planGenerator) { g.diet = s }
}

func WithHydrationStrategy(s HydrationStrategy) PlanGeneratorOption {
	return func(g *planGenerator) { g.hydration = s }
}

type planGenerator struct {
	workout   WorkoutStrategy
	diet      DietStrategy
	hydration HydrationStrategy
}

// NewPlanGenerator creates a generator using the default strategies unless
// overridden.
func NewPlanGenerator(opts ...PlanGeneratorOption) PlanGenerator {
	g := &planGenerator{
		workout:   defaultWorkoutStrategy{},
		diet:      defaultDietStrategy{},
		hydration: defaultHydrationStrategy{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns months 1..12 in order with only month 1 unlocked.
func (g *planGenerator) Generate(answers domain.AnswerSet) ([]domain.MonthlyPlan, error) {
	if !answers.Complete() {
		return nil, fmt.Errorf("%w: missing %v", ErrIncompleteAnswers, answers.Missing())
	}

	plans := make([]domain.MonthlyPlan, 0, domain.PlanMonths)
	for month := 1; month <= domain.PlanMonths; month++ {
		workout, err := g.workout.WorkoutPlan(answers, month)
		if err != nil {
			return nil, fmt.Errorf("workout plan for month %d: %w", month, err)
		}
		diet, err := g.diet.DietPlan(answers, month)
		if err != nil {
			return nil, fmt.Errorf("diet plan for month %d: %w", month, err)
		}
		hydration, err := g.hydration.HydrationPlan(answers, month)
		if err != nil {
			return nil, fmt.Errorf("hydration plan for month %d: %w", month, err)
		}

		plans = append(plans, domain.MonthlyPlan{
			Month:         month,
			WorkoutPlan:   workout,
			DietPlan:      diet,
			HydrationPlan: hydration,
			Unlocked:      month == 1,
		})
	}
	return plans, nil
}
