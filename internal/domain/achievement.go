package domain

// Achievement is a static catalog entry unlocked at most once per ledger.
type Achievement struct {
	ID          string                      `json:"id"`
	Name        string                      `json:"name"`
	Description string                      `json:"description"`
	Points      int                         `json:"points"`
	Unlocked    func(p ProgressRecord) bool `json:"-"`
}

// Achievements is the catalog, evaluated in order after every progress event.
var Achievements = []Achievement{
	{
		ID: "first-workout", Name: "First Workout", Description: "Complete your first workout", Points: 10,
		Unlocked: func(p ProgressRecord) bool { return p.WorkoutsCompletedToday >= 1 },
	},
	{
		ID: "hydration-hero", Name: "Hydration Hero", Description: "Drink 2 L of water in a day", Points: 15,
		Unlocked: func(p ProgressRecord) bool { return p.WaterIntakeMl >= 2000 },
	},
	{
		ID: "diet-master", Name: "Diet Master", Description: "Complete every meal of the day", Points: 20,
		Unlocked: func(p ProgressRecord) bool {
			return p.MealsPlannedPerDay > 0 && len(p.CompletedMealIDs) >= p.MealsPlannedPerDay
		},
	},
	{
		ID: "week-warrior", Name: "Week Warrior", Description: "Keep a 7 day streak", Points: 50,
		Unlocked: func(p ProgressRecord) bool { return p.StreakDays >= 7 },
	},
	{
		ID: "consistency-king", Name: "Consistency King", Description: "Keep a 14 day streak", Points: 100,
		Unlocked: func(p ProgressRecord) bool { return p.StreakDays >= 14 },
	},
	{
		ID: "fitness-legend", Name: "Fitness Legend", Description: "Keep a 30 day streak", Points: 200,
		Unlocked: func(p ProgressRecord) bool { return p.StreakDays >= 30 },
	},
}
