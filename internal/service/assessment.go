package service

import (
	"errors"
	"fmt"
	"math"

	"alcyxob/fitplan/internal/domain"
	"alcyxob/fitplan/internal/ranges"
)

var (
	ErrIncompleteAnswers = errors.New("intake answers are incomplete")
)

// AssessmentCalculator derives the personal assessment from a finished intake.
type AssessmentCalculator interface {
	Calculate(identity domain.Identity, answers domain.AnswerSet) (domain.Assessment, error)
}

// assessmentInput is the decoded view of the answers that rules look at.
type assessmentInput struct {
	identity     domain.Identity
	answers      domain.AnswerSet
	weightKg     float64
	heightCm     float64
	bmi          float64
	category     domain.BMICategory
	sleepHours   int
	sleepQuality domain.SleepQuality
}

// assessmentRule appends Text when Applies holds.
type assessmentRule struct {
	Applies func(in assessmentInput) bool
	Text    string
}

// recommendationRules are evaluated in order; the output keeps that order.
var recommendationRules = []assessmentRule{
	{
		Applies: func(in assessmentInput) bool { return in.category == domain.BMIUnderweight },
		Text:    "Focus on healthy weight gain with strength training.",
	},
	{
		Applies: func(in assessmentInput) bool {
			return in.category == domain.BMIOverweight || in.category == domain.BMIObese
		},
		Text: "Combine cardio with strength training to optimise fat loss.",
	},
	{
		Applies: func(in assessmentInput) bool { return in.sleepQuality == domain.SleepPoor },
		Text:    "IMPORTANT: move your sleep window to 22:00-06:00 (8 hours) for better recovery.",
	},
	{
		Applies: func(in assessmentInput) bool { return in.answers.CurrentWaterIntake == "0-1" },
		Text:    "Increase your water intake gradually to improve hydration.",
	},
	{
		Applies: func(in assessmentInput) bool { return in.answers.ActivityLevel == "sedentary" },
		Text:    "Start with light exercise and raise the intensity progressively.",
	},
	{
		Applies: func(in assessmentInput) bool { return in.answers.Experience == "beginner" },
		Text:    "Master correct technique before adding load.",
	},
}

var scheduleRules = []assessmentRule{
	{
		Applies: func(in assessmentInput) bool { return in.sleepQuality == domain.SleepPoor },
		Text:    "Go to bed at 22:00 and wake at 06:00 to optimise recovery and energy.",
	},
	{
		Applies: func(assessmentInput) bool { return true },
		Text:    "Morning sessions (07:00-08:00) are ideal for energy and metabolism.",
	},
	{
		Applies: func(assessmentInput) bool { return true },
		Text:    "Avoid intense training after 19:00 so it does not disturb your sleep.",
	},
}

var activityLabels = map[string]string{
	"sedentary": "sedentary",
	"light":     "lightly active",
	"moderate":  "moderately active",
	"active":    "very active",
}

var goalLabels = map[string]string{
	"weight-loss": "weight loss",
	"muscle-gain": "muscle gain",
	"maintenance": "weight maintenance",
	"endurance":   "better conditioning",
	"strength":    "more strength",
}

var sleepVerdicts = map[domain.SleepQuality]string{
	domain.SleepPoor:      "That is not enough for proper recovery. The ideal is 7-9 hours.",
	domain.SleepGood:      "Excellent! You are within the ideal range for adults.",
	domain.SleepExcessive: "You sleep more than needed. This can point to low sleep quality.",
	domain.SleepNormal:    "Your amount of sleep is about average.",
}

type assessmentCalculator struct {
	recommendations []assessmentRule
	schedule        []assessmentRule
}

// NewAssessmentCalculator creates the calculator with the built-in rule sets.
func NewAssessmentCalculator() AssessmentCalculator {
	return &assessmentCalculator{
		recommendations: recommendationRules,
		schedule:        scheduleRules,
	}
}

// Calculate is pure: the same identity and answers always give the same result.
func (c *assessmentCalculator) Calculate(identity domain.Identity, answers domain.AnswerSet) (domain.Assessment, error) {
	if !answers.Complete() {
		return domain.Assessment{}, fmt.Errorf("%w: missing %v", ErrIncompleteAnswers, answers.Missing())
	}

	in := decodeAssessmentInput(identity, answers)

	return domain.Assessment{
		BMI:                     math.Round(in.bmi*10) / 10,
		BMICategory:             in.category,
		NarrativeSummary:        narrativeSummary(in),
		Recommendations:         applyRules(c.recommendations, in),
		SleepHours:              in.sleepHours,
		SleepQuality:            in.sleepQuality,
		SleepAnalysis:           sleepAnalysis(in),
		ScheduleRecommendations: applyRules(c.schedule, in),
	}, nil
}

func decodeAssessmentInput(identity domain.Identity, answers domain.AnswerSet) assessmentInput {
	in := assessmentInput{
		identity: identity,
		answers:  answers,
		weightKg: ranges.Midpoint(answers.Weight, ranges.Defaults.WeightKg),
		heightCm: ranges.Midpoint(answers.Height, ranges.Defaults.HeightCm),
	}
	in.bmi = ComputeBMI(in.weightKg, in.heightCm)
	in.category = domain.ClassifyBMI(in.bmi)
	in.sleepHours, in.sleepQuality = sleepProfile(answers.BedTime, answers.WakeTime)
	return in
}

// ComputeBMI returns kg / m².
func ComputeBMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	if m <= 0 {
		m = ranges.Defaults.HeightCm / 100
	}
	return weightKg / (m * m)
}

// sleepProfile falls back to the default hours graded "normal" when the
// window is unknown.
func sleepProfile(bedTime, wakeTime string) (int, domain.SleepQuality) {
	hours, ok := ranges.SleepWindow(bedTime, wakeTime)
	if !ok {
		return hours, domain.SleepNormal
	}
	return hours, domain.ClassifySleep(hours)
}

func applyRules(rules []assessmentRule, in assessmentInput) []string {
	out := []string{}
	for _, r := range rules {
		if r.Applies(in) {
			out = append(out, r.Text)
		}
	}
	return out
}

func experienceLabel(experience string) string {
	switch experience {
	case "beginner":
		return "beginner"
	case "intermediate":
		return "intermediate"
	default:
		return "advanced"
	}
}

func narrativeSummary(in assessmentInput) string {
	a := in.answers
	return fmt.Sprintf(
		"%s, you are %s years old, weigh about %gkg and are around %gcm tall. "+
			"You are currently %s and your main goal is %s. "+
			"You sleep from %s to %s (%dh) and drink %s litres of water a day. "+
			"Your training experience level is %s.",
		in.identity.FirstName(), a.Age, in.weightKg, in.heightCm,
		activityLabels[a.ActivityLevel], goalLabels[a.Goal],
		a.BedTime, a.WakeTime, in.sleepHours, a.CurrentWaterIntake,
		experienceLabel(a.Experience),
	)
}

func sleepAnalysis(in assessmentInput) string {
	return fmt.Sprintf("You sleep about %d hours a night (%s to %s). %s",
		in.sleepHours, in.answers.BedTime, in.answers.WakeTime, sleepVerdicts[in.sleepQuality])
}
