package domain

import "time"

// PlanMonths is the length of the plan calendar.
const PlanMonths = 12

// Workout is one session of a week's schedule.
type Workout struct {
	ID        string `json:"id"`
	Day       int    `json:"day"` // 1 (Mon) - 7 (Sun)
	Name      string `json:"name"`
	Focus     string `json:"focus"`
	Minutes   int    `json:"minutes"`
	Intensity string `json:"intensity"`
}

type WorkoutPlan struct {
	SessionsPerWeek int       `json:"sessionsPerWeek"`
	Phase           string    `json:"phase"`
	Periodization   string    `json:"periodization"`
	DeloadWeek      int       `json:"deloadWeek"`
	Equipment       string    `json:"equipment"`
	Weekly          []Workout `json:"weekly"`
	RestDays        []int     `json:"restDays"`
}

type Meal struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Time string `json:"time"` // HH:MM
}

type MacroSplit struct {
	ProteinPercent int `json:"proteinPercent"`
	CarbsPercent   int `json:"carbsPercent"`
	FatsPercent    int `json:"fatsPercent"`
}

type DietPlan struct {
	DailyCalories int        `json:"dailyCalories"`
	ProteinGrams  int        `json:"proteinGrams"`
	CarbsGrams    int        `json:"carbsGrams"`
	FatsGrams     int        `json:"fatsGrams"`
	Macros        MacroSplit `json:"macros"`
	Restrictions  []string   `json:"restrictions,omitempty"`
	Meals         []Meal     `json:"meals"`
}

type HydrationPlan struct {
	DailyGoalMl int      `json:"dailyGoalMl"`
	Reminders   []string `json:"reminders"`
}

// MonthlyPlan is one month of content. Only Unlocked and RenewedAt change after
// generation.
type MonthlyPlan struct {
	Month         int           `json:"month"`
	WorkoutPlan   WorkoutPlan   `json:"workoutPlan"`
	DietPlan      DietPlan      `json:"dietPlan"`
	HydrationPlan HydrationPlan `json:"hydrationPlan"`
	Unlocked      bool          `json:"unlocked"`
	RenewedAt     *time.Time    `json:"renewedAt,omitempty"`
}

// UnlockFrontier returns the highest unlocked month, or 0 when none is.
func UnlockFrontier(plans []MonthlyPlan) int {
	frontier := 0
	for _, p := range plans {
		if p.Unlocked && p.Month > frontier {
			frontier = p.Month
		}
	}
	return frontier
}
