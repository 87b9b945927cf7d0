// internal/domain/question.go
package domain

// QuestionID identifies one intake question. The set is closed: every id has a
// matching field on AnswerSet.
type QuestionID string

const (
	QuestionAge                 QuestionID = "age"
	QuestionWeight              QuestionID = "weight"
	QuestionHeight              QuestionID = "height"
	QuestionActivityLevel       QuestionID = "activityLevel"
	QuestionGoal                QuestionID = "goal"
	QuestionExperience          QuestionID = "experience"
	QuestionFrequency           QuestionID = "frequency"
	QuestionTimePerSession      QuestionID = "timePerSession"
	QuestionEquipment           QuestionID = "equipment"
	QuestionDietaryRestrictions QuestionID = "dietaryRestrictions"
	QuestionSleepHours          QuestionID = "sleepHours"
	QuestionBedTime             QuestionID = "bedTime"
	QuestionWakeTime            QuestionID = "wakeTime"
	QuestionCurrentWaterIntake  QuestionID = "currentWaterIntake"
)

// QuestionKind tells whether a question takes one value or a set of values.
type QuestionKind string

const (
	KindSingle QuestionKind = "single"
	KindMulti  QuestionKind = "multi"
)

// Question is a catalog entry. Options hold answer values, not display labels.
type Question struct {
	ID      QuestionID   `json:"id"`
	Title   string       `json:"title"`
	Kind    QuestionKind `json:"kind"`
	Options []string     `json:"options"`
}

// Questions is the ordered intake questionnaire.
var Questions = []Question{
	{ID: QuestionAge, Title: "How old are you?", Kind: KindSingle,
		Options: []string{"18-25", "26-35", "36-45", "46-55", "56+"}},
	{ID: QuestionWeight, Title: "What is your current weight (kg)?", Kind: KindSingle,
		Options: []string{"40-55", "56-70", "71-85", "86-100", "100+"}},
	{ID: QuestionHeight, Title: "How tall are you (cm)?", Kind: KindSingle,
		Options: []string{"150-160", "161-170", "171-180", "181-190", "190+"}},
	{ID: QuestionActivityLevel, Title: "How active are you today?", Kind: KindSingle,
		Options: []string{"sedentary", "light", "moderate", "active"}},
	{ID: QuestionGoal, Title: "What is your main goal?", Kind: KindSingle,
		Options: []string{"weight-loss", "muscle-gain", "maintenance", "endurance", "strength"}},
	{ID: QuestionExperience, Title: "How experienced are you with training?", Kind: KindSingle,
		Options: []string{"beginner", "intermediate", "advanced"}},
	{ID: QuestionFrequency, Title: "How many days per week can you train?", Kind: KindSingle,
		Options: []string{"2", "3", "4", "5", "6"}},
	{ID: QuestionTimePerSession, Title: "How many minutes per session?", Kind: KindSingle,
		Options: []string{"30", "45", "60", "90", "120"}},
	{ID: QuestionEquipment, Title: "Where will you train?", Kind: KindSingle,
		Options: []string{"gym", "home-basic", "home-none", "outdoor"}},
	{ID: QuestionDietaryRestrictions, Title: "Any dietary restrictions or preferences?", Kind: KindMulti,
		Options: []string{"vegetarian", "vegan", "gluten-free", "lactose-free", "low-carb", "none"}},
	{ID: QuestionSleepHours, Title: "How many hours do you sleep per night?", Kind: KindSingle,
		Options: []string{"4-5", "6-7", "8-9", "10+"}},
	{ID: QuestionBedTime, Title: "When do you usually go to bed?", Kind: KindSingle,
		Options: []string{"21:00-22:00", "22:00-23:00", "23:00-00:00", "00:00-01:00", "01:00+"}},
	{ID: QuestionWakeTime, Title: "When do you usually wake up?", Kind: KindSingle,
		Options: []string{"05:00-06:00", "06:00-07:00", "07:00-08:00", "08:00-09:00", "09:00+"}},
	{ID: QuestionCurrentWaterIntake, Title: "How many litres of water do you drink per day?", Kind: KindSingle,
		Options: []string{"0-1", "1-2", "2-3", "3+"}},
}

// LookupQuestion returns the catalog entry for id.
func LookupQuestion(id QuestionID) (Question, bool) {
	for _, q := range Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Allows reports whether value is one of the question's options.
func (q Question) Allows(value string) bool {
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}
