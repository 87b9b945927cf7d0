package service

import (
	"time"

	"alcyxob/fitplan/internal/domain"
)

// Points per completion event. Achievements carry their own value.
const (
	WorkoutPoints = 10
	MealPoints    = 5
)

// levelThresholds[i] is the minimum points for level i+1.
var levelThresholds = []int{0, 100, 250, 500, 1000, 2000, 3500, 5000}

// LevelFor returns the level reached with points.
func LevelFor(points int) int {
	level := 1
	for i, threshold := range levelThresholds {
		if points >= threshold {
			level = i + 1
		}
	}
	return level
}

// ProgressResult describes what one event changed.
type ProgressResult struct {
	Changed       bool                 `json:"changed"`
	PointsAwarded int                  `json:"pointsAwarded"`
	Unlocked      []domain.Achievement `json:"unlocked"`
	LevelUp       bool                 `json:"levelUp"`
}

// ProgressTracker applies user actions to the gamification ledger. Every event
// is dated to the tracker clock's calendar day.
type ProgressTracker struct {
	record domain.ProgressRecord
	now    func() time.Time
}

// NewProgressTracker wraps record. A nil clock uses time.Now.
func NewProgressTracker(record domain.ProgressRecord, now func() time.Time) *ProgressTracker {
	if now == nil {
		now = time.Now
	}
	if record.Level < 1 {
		record.Level = 1
	}
	if record.Date == "" {
		record.Date = now().Format(domain.DateLayout)
	}
	return &ProgressTracker{record: record, now: now}
}

// Record returns a copy of the ledger.
func (t *ProgressTracker) Record() domain.ProgressRecord {
	r := t.record
	r.CompletedMealIDs = append([]string{}, t.record.CompletedMealIDs...)
	r.CompletedWorkoutIDs = append([]string{}, t.record.CompletedWorkoutIDs...)
	r.UnlockedAchievementIDs = append([]string{}, t.record.UnlockedAchievementIDs...)
	return r
}

// SetTargets records the daily targets derived from the generated plans.
func (t *ProgressTracker) SetTargets(totalWorkoutsPlanned, waterGoalMl, mealsPlannedPerDay int) {
	t.record.TotalWorkoutsPlanned = totalWorkoutsPlanned
	t.record.WaterGoalMl = waterGoalMl
	t.record.MealsPlannedPerDay = mealsPlannedPerDay
	t.updateAdherence()
}

// Reset replaces the ledger with an empty one dated today.
func (t *ProgressTracker) Reset() {
	t.record = domain.NewProgressRecord(t.today())
}

// CompleteWorkout counts id once per day.
func (t *ProgressTracker) CompleteWorkout(id string) ProgressResult {
	t.rollover()
	if t.record.HasWorkout(id) {
		return ProgressResult{}
	}
	t.record.CompletedWorkoutIDs = append(t.record.CompletedWorkoutIDs, id)
	t.record.WorkoutsCompletedToday++
	return t.award(WorkoutPoints)
}

// CompleteMeal counts id once per day.
func (t *ProgressTracker) CompleteMeal(id string) ProgressResult {
	t.rollover()
	if t.record.HasMeal(id) {
		return ProgressResult{}
	}
	t.record.CompletedMealIDs = append(t.record.CompletedMealIDs, id)
	t.updateAdherence()
	return t.award(MealPoints)
}

// LogWater adds ml to today's intake. Negative amounts correct mistakes; the
// total never drops below zero and has no upper bound.
func (t *ProgressTracker) LogWater(ml int) ProgressResult {
	t.rollover()
	before := t.record.WaterIntakeMl
	t.record.WaterIntakeMl += ml
	if t.record.WaterIntakeMl < 0 {
		t.record.WaterIntakeMl = 0
	}
	res := t.award(0)
	res.Changed = res.Changed || before != t.record.WaterIntakeMl
	return res
}

// Rollover advances the ledger to today without recording an event. It
// reports whether the date changed.
func (t *ProgressTracker) Rollover() bool {
	return t.rollover()
}

func (t *ProgressTracker) today() string {
	return t.now().Format(domain.DateLayout)
}

// rollover resets the daily counters when the calendar day changed. The
// streak grows only when the day before today had a completed workout. A
// ledger whose date does not parse is reset to today.
func (t *ProgressTracker) rollover() bool {
	today := t.today()
	if _, err := time.Parse(domain.DateLayout, t.record.Date); err == nil && today <= t.record.Date {
		return false
	}

	gap := daysBetween(t.record.Date, today)
	if gap == 1 && t.record.WorkoutsCompletedToday >= 1 {
		t.record.StreakDays++
	} else {
		t.record.StreakDays = 0
	}

	t.record.Date = today
	t.record.WorkoutsCompletedToday = 0
	t.record.WaterIntakeMl = 0
	t.record.CompletedMealIDs = []string{}
	t.record.CompletedWorkoutIDs = []string{}
	t.updateAdherence()
	return true
}

// daysBetween returns whole days from a to b, or -1 when a is not a date.
func daysBetween(a, b string) int {
	from, err := time.Parse(domain.DateLayout, a)
	if err != nil {
		return -1
	}
	to, err := time.Parse(domain.DateLayout, b)
	if err != nil {
		return -1
	}
	return int(to.Sub(from).Hours() / 24)
}

func (t *ProgressTracker) updateAdherence() {
	planned := t.record.MealsPlannedPerDay
	if planned <= 0 {
		t.record.DietAdherencePercent = 0
		return
	}
	pct := len(t.record.CompletedMealIDs) * 100 / planned
	if pct > 100 {
		pct = 100
	}
	t.record.DietAdherencePercent = pct
}

// award adds points, then unlocks any newly satisfied achievements and
// recomputes the level.
func (t *ProgressTracker) award(points int) ProgressResult {
	res := ProgressResult{Changed: points > 0, PointsAwarded: points}
	t.record.TotalPoints += points

	for _, a := range domain.Achievements {
		if t.record.HasAchievement(a.ID) || !a.Unlocked(t.record) {
			continue
		}
		t.record.UnlockedAchievementIDs = append(t.record.UnlockedAchievementIDs, a.ID)
		t.record.TotalPoints += a.Points
		res.PointsAwarded += a.Points
		res.Unlocked = append(res.Unlocked, a)
		res.Changed = true
	}

	if level := LevelFor(t.record.TotalPoints); level > t.record.Level {
		t.record.Level = level
		res.LevelUp = true
	}
	return res
}
