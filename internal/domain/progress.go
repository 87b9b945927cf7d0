package domain

// DateLayout is the calendar-date format of ProgressRecord.Date.
const DateLayout = "2006-01-02"

// ProgressRecord is the gamification ledger. Id lists behave as sets.
type ProgressRecord struct {
	WorkoutsCompletedToday int      `json:"workoutsCompletedToday"`
	TotalWorkoutsPlanned   int      `json:"totalWorkoutsPlanned"`
	DietAdherencePercent   int      `json:"dietAdherencePercent"`
	MealsPlannedPerDay     int      `json:"mealsPlannedPerDay"`
	WaterIntakeMl          int      `json:"waterIntakeMl"`
	WaterGoalMl            int      `json:"waterGoalMl"`
	Date                   string   `json:"date"`
	CompletedMealIDs       []string `json:"completedMealIds"`
	CompletedWorkoutIDs    []string `json:"completedWorkoutIds"`
	StreakDays             int      `json:"streakDays"`
	Level                  int      `json:"level"`
	TotalPoints            int      `json:"totalPoints"`
	UnlockedAchievementIDs []string `json:"unlockedAchievementIds"`
}

// NewProgressRecord returns an empty ledger dated date.
func NewProgressRecord(date string) ProgressRecord {
	return ProgressRecord{
		Date:                   date,
		Level:                  1,
		CompletedMealIDs:       []string{},
		CompletedWorkoutIDs:    []string{},
		UnlockedAchievementIDs: []string{},
	}
}

func (p ProgressRecord) HasWorkout(id string) bool     { return contains(p.CompletedWorkoutIDs, id) }
func (p ProgressRecord) HasMeal(id string) bool        { return contains(p.CompletedMealIDs, id) }
func (p ProgressRecord) HasAchievement(id string) bool { return contains(p.UnlockedAchievementIDs, id) }
