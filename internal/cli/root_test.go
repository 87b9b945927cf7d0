package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"alcyxob/fitplan/internal/domain"
	"alcyxob/fitplan/internal/service"
	"alcyxob/fitplan/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const answersJSON = `{
  "age": "26-35",
  "weight": "56-70",
  "height": "161-170",
  "activityLevel": "moderate",
  "goal": "maintenance",
  "experience": "intermediate",
  "frequency": "3",
  "timePerSession": "60",
  "equipment": "gym",
  "dietaryRestrictions": ["none"],
  "sleepHours": "8-9",
  "bedTime": "22:00-23:00",
  "wakeTime": "06:00-07:00",
  "currentWaterIntake": "2-3"
}`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(NewApp())
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuestionsCmd(t *testing.T) {
	out, err := execute(t, "questions")
	require.NoError(t, err)

	var qs []domain.Question
	require.NoError(t, json.Unmarshal([]byte(out), &qs))
	assert.Len(t, qs, len(domain.Questions))
}

func TestSchemaCmd(t *testing.T) {
	out, err := execute(t, "schema")
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "object", schema["type"])
	assert.Contains(t, schema["properties"], "currentWaterIntake")
}

func TestAssessCmd(t *testing.T) {
	path := writeFile(t, answersJSON)
	out, err := execute(t, "assess", path, "--name", "Ana Souza", "--phone", "1", "--email", "a@x.com")
	require.NoError(t, err)

	var a domain.Assessment
	require.NoError(t, json.Unmarshal([]byte(out), &a))
	assert.Equal(t, 23.0, a.BMI)
	assert.Equal(t, domain.BMINormal, a.BMICategory)
	assert.Contains(t, a.NarrativeSummary, "Ana")
}

func TestPlansCmd(t *testing.T) {
	path := writeFile(t, answersJSON)

	out, err := execute(t, "plans", path)
	require.NoError(t, err)
	var plans []domain.MonthlyPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plans))
	assert.Len(t, plans, domain.PlanMonths)
	assert.True(t, plans[0].Unlocked)

	out, err = execute(t, "plans", path, "--month", "4")
	require.NoError(t, err)
	var plan domain.MonthlyPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, 4, plan.Month)

	_, err = execute(t, "plans", path, "--month", "13")
	assert.ErrorIs(t, err, service.ErrMonthOutOfRange)
}

func TestReadAnswers_Errors(t *testing.T) {
	_, err := execute(t, "assess", writeFile(t, `{"weight": "heavy"}`))
	assert.ErrorIs(t, err, validation.ErrInvalidDocument)

	_, err = execute(t, "plans", writeFile(t, `{"weight": "56-70"}`))
	assert.ErrorIs(t, err, service.ErrIncompleteAnswers)

	_, err = execute(t, "assess", writeFile(t, `not json`))
	assert.Error(t, err)

	_, err = execute(t, "assess", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
