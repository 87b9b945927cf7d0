package domain

// BMICategory classifies a body mass index.
type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

// ClassifyBMI maps a BMI to its category: <18.5, [18.5,25), [25,30), >=30.
func ClassifyBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// SleepQuality grades nightly sleep duration.
type SleepQuality string

const (
	SleepPoor      SleepQuality = "poor"
	SleepNormal    SleepQuality = "normal"
	SleepGood      SleepQuality = "good"
	SleepExcessive SleepQuality = "excessive"
)

// ClassifySleep grades hours of sleep: <6 poor, 7-9 good, >9 excessive, else normal.
func ClassifySleep(hours int) SleepQuality {
	switch {
	case hours < 6:
		return SleepPoor
	case hours >= 7 && hours <= 9:
		return SleepGood
	case hours > 9:
		return SleepExcessive
	default:
		return SleepNormal
	}
}

// Assessment is derived once from the answers and identity at intake completion.
type Assessment struct {
	BMI                     float64      `json:"bmi"`
	BMICategory             BMICategory  `json:"bmiCategory"`
	NarrativeSummary        string       `json:"narrativeSummary"`
	Recommendations         []string     `json:"recommendations"`
	SleepHours              int          `json:"sleepHours"`
	SleepQuality            SleepQuality `json:"sleepQuality"`
	SleepAnalysis           string       `json:"sleepAnalysis"`
	ScheduleRecommendations []string     `json:"scheduleRecommendations"`
}
