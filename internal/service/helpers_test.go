package service

import (
	"testing"

	"alcyxob/fitplan/internal/domain"

	"github.com/stretchr/testify/require"
)

var anaIdentity = domain.Identity{Name: "Ana Souza", Phone: "11999999999", Email: "ana@x.com"}

// sampleAnswers returns a complete answer set; overrides replace single values.
func sampleAnswers(t *testing.T, overrides map[domain.QuestionID]string) domain.AnswerSet {
	t.Helper()
	values := map[domain.QuestionID]string{
		domain.QuestionAge:                "26-35",
		domain.QuestionWeight:             "56-70",
		domain.QuestionHeight:             "161-170",
		domain.QuestionActivityLevel:      "moderate",
		domain.QuestionGoal:               "maintenance",
		domain.QuestionExperience:         "intermediate",
		domain.QuestionFrequency:          "3",
		domain.QuestionTimePerSession:     "60",
		domain.QuestionEquipment:          "gym",
		domain.QuestionSleepHours:         "8-9",
		domain.QuestionBedTime:            "22:00-23:00",
		domain.QuestionWakeTime:           "06:00-07:00",
		domain.QuestionCurrentWaterIntake: "2-3",
	}
	for id, v := range overrides {
		values[id] = v
	}

	var a domain.AnswerSet
	for id, v := range values {
		require.NoError(t, a.Set(id, v))
	}
	require.NoError(t, a.Set(domain.QuestionDietaryRestrictions, "none"))
	require.True(t, a.Complete())
	return a
}
