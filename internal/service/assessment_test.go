package service

import (
	"testing"

	"alcyxob/fitplan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessment_ScenarioNormalBMI(t *testing.T) {
	calc := NewAssessmentCalculator()

	got, err := calc.Calculate(anaIdentity, sampleAnswers(t, nil))
	require.NoError(t, err)

	assert.Equal(t, 23.0, got.BMI)
	assert.Equal(t, domain.BMINormal, got.BMICategory)
	assert.Equal(t, 8, got.SleepHours)
	assert.Equal(t, domain.SleepGood, got.SleepQuality)
	assert.Contains(t, got.NarrativeSummary, "Ana, you are 26-35 years old")
	assert.Contains(t, got.NarrativeSummary, "weigh about 63kg")
	assert.Contains(t, got.NarrativeSummary, "around 165.5cm")
	assert.Contains(t, got.SleepAnalysis, "(22:00-23:00 to 06:00-07:00)")
	assert.Empty(t, got.Recommendations)
	assert.Equal(t, []string{
		"Morning sessions (07:00-08:00) are ideal for energy and metabolism.",
		"Avoid intense training after 19:00 so it does not disturb your sleep.",
	}, got.ScheduleRecommendations)
}

func TestAssessment_IsDeterministic(t *testing.T) {
	calc := NewAssessmentCalculator()
	answers := sampleAnswers(t, map[domain.QuestionID]string{domain.QuestionWeight: "100+"})

	first, err := calc.Calculate(anaIdentity, answers)
	require.NoError(t, err)
	second, err := calc.Calculate(anaIdentity, answers)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAssessment_RuleOrder(t *testing.T) {
	calc := NewAssessmentCalculator()
	answers := sampleAnswers(t, map[domain.QuestionID]string{
		domain.QuestionWeight:             "100+",
		domain.QuestionHeight:             "150-160",
		domain.QuestionBedTime:            "01:00+",
		domain.QuestionWakeTime:           "05:00-06:00",
		domain.QuestionCurrentWaterIntake: "0-1",
		domain.QuestionActivityLevel:      "sedentary",
		domain.QuestionExperience:         "beginner",
	})

	got, err := calc.Calculate(anaIdentity, answers)
	require.NoError(t, err)

	assert.Equal(t, domain.BMIObese, got.BMICategory)
	assert.Equal(t, 4, got.SleepHours)
	assert.Equal(t, domain.SleepPoor, got.SleepQuality)
	assert.Equal(t, []string{
		"Combine cardio with strength training to optimise fat loss.",
		"IMPORTANT: move your sleep window to 22:00-06:00 (8 hours) for better recovery.",
		"Increase your water intake gradually to improve hydration.",
		"Start with light exercise and raise the intensity progressively.",
		"Master correct technique before adding load.",
	}, got.Recommendations)
	require.Len(t, got.ScheduleRecommendations, 3)
	assert.Equal(t, "Go to bed at 22:00 and wake at 06:00 to optimise recovery and energy.", got.ScheduleRecommendations[0])
}

func TestAssessment_Underweight(t *testing.T) {
	calc := NewAssessmentCalculator()
	answers := sampleAnswers(t, map[domain.QuestionID]string{
		domain.QuestionWeight: "40-55",
		domain.QuestionHeight: "190+",
	})

	got, err := calc.Calculate(anaIdentity, answers)
	require.NoError(t, err)
	assert.Equal(t, domain.BMIUnderweight, got.BMICategory)
	assert.Equal(t, []string{"Focus on healthy weight gain with strength training."}, got.Recommendations)
}

func TestAssessment_IncompleteAnswers(t *testing.T) {
	calc := NewAssessmentCalculator()
	var answers domain.AnswerSet
	require.NoError(t, answers.Set(domain.QuestionWeight, "56-70"))

	_, err := calc.Calculate(anaIdentity, answers)
	assert.ErrorIs(t, err, ErrIncompleteAnswers)
}

func TestClassifyBMI_Boundaries(t *testing.T) {
	tests := []struct {
		bmi  float64
		want domain.BMICategory
	}{
		{18.49, domain.BMIUnderweight},
		{18.5, domain.BMINormal},
		{24.99, domain.BMINormal},
		{25.0, domain.BMIOverweight},
		{29.99, domain.BMIOverweight},
		{30.0, domain.BMIObese},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ClassifyBMI(tt.bmi), "bmi %v", tt.bmi)
	}
}

func TestClassifyBMI_AllBuckets(t *testing.T) {
	weight, _ := domain.LookupQuestion(domain.QuestionWeight)
	height, _ := domain.LookupQuestion(domain.QuestionHeight)
	calc := NewAssessmentCalculator()

	for _, w := range weight.Options {
		for _, h := range height.Options {
			answers := sampleAnswers(t, map[domain.QuestionID]string{
				domain.QuestionWeight: w,
				domain.QuestionHeight: h,
			})
			a, err := calc.Calculate(anaIdentity, answers)
			require.NoError(t, err)
			b, err := calc.Calculate(anaIdentity, answers)
			require.NoError(t, err)
			assert.Equal(t, a.BMICategory, b.BMICategory, "%s/%s", w, h)
			assert.NotEmpty(t, a.BMICategory)
		}
	}
}

func TestSleepProfile(t *testing.T) {
	tests := []struct {
		bed, wake string
		hours     int
		quality   domain.SleepQuality
	}{
		{"23:00-00:00", "06:00-07:00", 7, domain.SleepGood},
		{"00:00-01:00", "05:00-06:00", 5, domain.SleepPoor},
		{"21:00-22:00", "08:00-09:00", 11, domain.SleepExcessive},
		{"00:00-01:00", "06:00-07:00", 6, domain.SleepNormal},
		{"", "06:00-07:00", 8, domain.SleepNormal},
	}
	for _, tt := range tests {
		hours, quality := sleepProfile(tt.bed, tt.wake)
		assert.Equal(t, tt.hours, hours, "%s -> %s", tt.bed, tt.wake)
		assert.Equal(t, tt.quality, quality, "%s -> %s", tt.bed, tt.wake)
	}
}
