package service

import (
	"fmt"
	"math"

	"alcyxob/fitplan/internal/domain"
	"alcyxob/fitplan/internal/ranges"
)

// WorkoutStrategy builds the training block for one month.
type WorkoutStrategy interface {
	WorkoutPlan(answers domain.AnswerSet, month int) (domain.WorkoutPlan, error)
}

// DietStrategy builds the nutrition plan for one month.
type DietStrategy interface {
	DietPlan(answers domain.AnswerSet, month int) (domain.DietPlan, error)
}

// HydrationStrategy builds the water plan for one month.
type HydrationStrategy interface {
	HydrationPlan(answers domain.AnswerSet, month int) (domain.HydrationPlan, error)
}

// quarterPhases names the periodization block of each quarter of the year.
var quarterPhases = [4]string{"adaptation", "hypertrophy", "strength", "consolidation"}

// sessionTemplates is the rotation of focuses for a training week.
var sessionTemplates = []struct {
	Name  string
	Focus string
}{
	{"Full Body A", "full-body"},
	{"Upper Body", "upper"},
	{"Lower Body", "lower"},
	{"Conditioning", "cardio"},
	{"Full Body B", "full-body"},
	{"Mobility & Core", "mobility"},
}

// trainingDays maps sessions per week to weekdays (1 = Monday).
var trainingDays = map[int][]int{
	2: {2, 5},
	3: {1, 3, 5},
	4: {1, 2, 4, 5},
	5: {1, 2, 3, 5, 6},
	6: {1, 2, 3, 4, 5, 6},
}

func quarterOf(month int) int {
	return (month - 1) / 3
}

func checkMonth(month int) error {
	if month < 1 || month > domain.PlanMonths {
		return fmt.Errorf("%w: %d", ErrMonthOutOfRange, month)
	}
	return nil
}

type defaultWorkoutStrategy struct{}

func (defaultWorkoutStrategy) WorkoutPlan(answers domain.AnswerSet, month int) (domain.WorkoutPlan, error) {
	if err := checkMonth(month); err != nil {
		return domain.WorkoutPlan{}, err
	}
	sessions := int(ranges.Midpoint(answers.Frequency, ranges.Defaults.Frequency))
	days, ok := trainingDays[sessions]
	if !ok {
		sessions = int(ranges.Defaults.Frequency)
		days = trainingDays[sessions]
	}
	minutes := int(ranges.Midpoint(answers.TimePerSession, ranges.Defaults.Minutes))
	phase := quarterPhases[quarterOf(month)]

	intensity := "moderate"
	switch {
	case answers.Experience == "beginner" && month <= 3:
		intensity = "low"
	case phase == "strength" || answers.Experience == "advanced":
		intensity = "high"
	}

	weekly := make([]domain.Workout, 0, sessions)
	for i, day := range days {
		tpl := sessionTemplates[i%len(sessionTemplates)]
		weekly = append(weekly, domain.Workout{
			ID:        fmt.Sprintf("m%d-w%d", month, i+1),
			Day:       day,
			Name:      tpl.Name,
			Focus:     tpl.Focus,
			Minutes:   minutes,
			Intensity: intensity,
		})
	}

	rest := []int{}
	for d := 1; d <= 7; d++ {
		if !containsInt(days, d) {
			rest = append(rest, d)
		}
	}

	return domain.WorkoutPlan{
		SessionsPerWeek: sessions,
		Phase:           phase,
		Periodization:   "linear",
		DeloadWeek:      4,
		Equipment:       answers.Equipment,
		Weekly:          weekly,
		RestDays:        rest,
	}, nil
}

type defaultDietStrategy struct{}

// goalCalorieFactor scales maintenance calories (kcal/kg) per goal.
var goalCalorieFactor = map[string]float64{
	"weight-loss": 26,
	"muscle-gain": 35,
	"maintenance": 31,
	"endurance":   33,
	"strength":    33,
}

var goalMacros = map[string]domain.MacroSplit{
	"weight-loss": {ProteinPercent: 35, CarbsPercent: 35, FatsPercent: 30},
	"muscle-gain": {ProteinPercent: 30, CarbsPercent: 45, FatsPercent: 25},
	"endurance":   {ProteinPercent: 25, CarbsPercent: 50, FatsPercent: 25},
}

var defaultMacros = domain.MacroSplit{ProteinPercent: 30, CarbsPercent: 40, FatsPercent: 30}

var mealSlots = []domain.Meal{
	{Name: "Breakfast", Time: "07:30"},
	{Name: "Morning snack", Time: "10:30"},
	{Name: "Lunch", Time: "13:00"},
	{Name: "Afternoon snack", Time: "16:30"},
	{Name: "Dinner", Time: "20:00"},
}

func (defaultDietStrategy) DietPlan(answers domain.AnswerSet, month int) (domain.DietPlan, error) {
	if err := checkMonth(month); err != nil {
		return domain.DietPlan{}, err
	}
	weight := ranges.Midpoint(answers.Weight, ranges.Defaults.WeightKg)
	factor, ok := goalCalorieFactor[answers.Goal]
	if !ok {
		factor = goalCalorieFactor["maintenance"]
	}
	calories := int(math.Round(weight*factor/10) * 10)

	macros, ok := goalMacros[answers.Goal]
	if !ok {
		macros = defaultMacros
	}

	slots := []int{0, 2, 3, 4}
	if answers.Goal == "muscle-gain" {
		slots = []int{0, 1, 2, 3, 4}
	}
	meals := make([]domain.Meal, 0, len(slots))
	for i, s := range slots {
		meal := mealSlots[s]
		meal.ID = fmt.Sprintf("m%d-meal%d", month, i+1)
		meals = append(meals, meal)
	}

	restrictions := []string{}
	for _, r := range answers.DietaryRestrictions {
		if r != "none" {
			restrictions = append(restrictions, r)
		}
	}

	return domain.DietPlan{
		DailyCalories: calories,
		ProteinGrams:  calories * macros.ProteinPercent / 100 / 4,
		CarbsGrams:    calories * macros.CarbsPercent / 100 / 4,
		FatsGrams:     calories * macros.FatsPercent / 100 / 9,
		Macros:        macros,
		Restrictions:  restrictions,
		Meals:         meals,
	}, nil
}

type defaultHydrationStrategy struct{}

const (
	mlPerKg         = 35
	minDailyWaterMl = 2000
	quarterlyBumpMl = 250
	waterRoundingMl = 50
)

func (defaultHydrationStrategy) HydrationPlan(answers domain.AnswerSet, month int) (domain.HydrationPlan, error) {
	if err := checkMonth(month); err != nil {
		return domain.HydrationPlan{}, err
	}
	weight := ranges.Midpoint(answers.Weight, ranges.Defaults.WeightKg)
	goal := int(math.Round(weight*mlPerKg/waterRoundingMl)) * waterRoundingMl
	if goal < minDailyWaterMl {
		goal = minDailyWaterMl
	}
	if answers.ActivityLevel == "moderate" || answers.ActivityLevel == "active" {
		goal += quarterOf(month) * quarterlyBumpMl
	}

	reminders := []string{"07:00", "10:00", "13:00", "16:00", "19:00"}
	if answers.CurrentWaterIntake == "0-1" {
		reminders = append(reminders, "11:30", "17:30")
	}

	return domain.HydrationPlan{
		DailyGoalMl: goal,
		Reminders:   reminders,
	}, nil
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
