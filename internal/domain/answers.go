package domain

import (
	"errors"
	"strings"
)

var (
	ErrUnknownQuestion     = errors.New("unknown question id")
	ErrInvalidOption       = errors.New("value is not an option of this question")
	ErrSingleValueExpected = errors.New("question accepts exactly one value")
)

// Identity is the contact data captured before the questionnaire starts.
type Identity struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Complete reports whether all three fields are filled in.
func (i Identity) Complete() bool {
	return strings.TrimSpace(i.Name) != "" &&
		strings.TrimSpace(i.Phone) != "" &&
		strings.TrimSpace(i.Email) != ""
}

// FirstName returns the first word of Name.
func (i Identity) FirstName() string {
	fields := strings.Fields(i.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// AnswerSet holds one field per intake question.
type AnswerSet struct {
	Age                 string   `json:"age,omitempty"`
	Weight              string   `json:"weight,omitempty"`
	Height              string   `json:"height,omitempty"`
	ActivityLevel       string   `json:"activityLevel,omitempty"`
	Goal                string   `json:"goal,omitempty"`
	Experience          string   `json:"experience,omitempty"`
	Frequency           string   `json:"frequency,omitempty"`
	TimePerSession      string   `json:"timePerSession,omitempty"`
	Equipment           string   `json:"equipment,omitempty"`
	DietaryRestrictions []string `json:"dietaryRestrictions,omitempty"`
	SleepHours          string   `json:"sleepHours,omitempty"`
	BedTime             string   `json:"bedTime,omitempty"`
	WakeTime            string   `json:"wakeTime,omitempty"`
	CurrentWaterIntake  string   `json:"currentWaterIntake,omitempty"`
}

// single maps a single-select question id to its field.
func (a *AnswerSet) single(id QuestionID) *string {
	switch id {
	case QuestionAge:
		return &a.Age
	case QuestionWeight:
		return &a.Weight
	case QuestionHeight:
		return &a.Height
	case QuestionActivityLevel:
		return &a.ActivityLevel
	case QuestionGoal:
		return &a.Goal
	case QuestionExperience:
		return &a.Experience
	case QuestionFrequency:
		return &a.Frequency
	case QuestionTimePerSession:
		return &a.TimePerSession
	case QuestionEquipment:
		return &a.Equipment
	case QuestionSleepHours:
		return &a.SleepHours
	case QuestionBedTime:
		return &a.BedTime
	case QuestionWakeTime:
		return &a.WakeTime
	case QuestionCurrentWaterIntake:
		return &a.CurrentWaterIntake
	}
	return nil
}

// Set upserts the answer for id. Single-select questions take exactly one value;
// multi-select questions take any number (zero clears the selection). Duplicate
// values are collapsed.
func (a *AnswerSet) Set(id QuestionID, values ...string) error {
	q, ok := LookupQuestion(id)
	if !ok {
		return ErrUnknownQuestion
	}
	for _, v := range values {
		if !q.Allows(v) {
			return ErrInvalidOption
		}
	}

	if q.Kind == KindMulti {
		set := make([]string, 0, len(values))
		for _, v := range values {
			if !contains(set, v) {
				set = append(set, v)
			}
		}
		a.DietaryRestrictions = set
		return nil
	}

	if len(values) != 1 {
		return ErrSingleValueExpected
	}
	*a.single(id) = values[0]
	return nil
}

// Values returns the answer for id as a slice (one element for single-select
// questions, nil when unanswered).
func (a AnswerSet) Values(id QuestionID) []string {
	if id == QuestionDietaryRestrictions {
		return a.DietaryRestrictions
	}
	if p := a.single(id); p != nil && *p != "" {
		return []string{*p}
	}
	return nil
}

// Value returns the single-select answer for id, or "".
func (a AnswerSet) Value(id QuestionID) string {
	if p := a.single(id); p != nil {
		return *p
	}
	return ""
}

// Has reports whether id has a non-empty answer.
func (a AnswerSet) Has(id QuestionID) bool {
	return len(a.Values(id)) > 0
}

// Missing lists unanswered questions in catalog order.
func (a AnswerSet) Missing() []QuestionID {
	var missing []QuestionID
	for _, q := range Questions {
		if !a.Has(q.ID) {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// Complete reports whether every question has an answer.
func (a AnswerSet) Complete() bool {
	return len(a.Missing()) == 0
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
