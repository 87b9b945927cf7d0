// Package ranges decodes the bucketed answers of the intake questionnaire
// ("56-70", "100+", "22:00-23:00", "01:00+") into representative numbers.
//
// Malformed or empty buckets never fail: callers pass the fallback from
// Defaults and get it back.
package ranges

import (
	"strconv"
	"strings"
)

// Defaults is the single table of fallback values used when a bucket cannot be
// decoded.
var Defaults = struct {
	WeightKg    float64
	HeightCm    float64
	BedHour     int
	WakeHour    int
	SleepHours  int
	WaterLitres float64
	Frequency   float64
	Minutes     float64
}{
	WeightKg:    70,
	HeightCm:    170,
	BedHour:     22,
	WakeHour:    7,
	SleepHours:  8,
	WaterLitres: 2,
	Frequency:   3,
	Minutes:     60,
}

// Midpoint returns (A+B)/2 for "A-B", A for "A+" and the plain number for "A".
func Midpoint(bucket string, fallback float64) float64 {
	s := strings.TrimSpace(bucket)
	if s == "" {
		return fallback
	}
	if strings.HasSuffix(s, "+") {
		if v, ok := number(strings.TrimSuffix(s, "+")); ok {
			return v
		}
		return fallback
	}
	if lo, hi, found := strings.Cut(s, "-"); found {
		a, okA := number(lo)
		b, okB := number(hi)
		if !okA || !okB {
			return fallback
		}
		return (a + b) / 2
	}
	if v, ok := number(s); ok {
		return v
	}
	return fallback
}

// ClockHour returns the hour of the first clock value in "HH:MM-HH:MM" or
// "HH:MM+".
func ClockHour(bucket string, fallback int) int {
	s := strings.TrimSpace(bucket)
	s = strings.TrimSuffix(s, "+")
	first, _, _ := strings.Cut(s, "-")
	hh, _, found := strings.Cut(first, ":")
	if !found {
		return fallback
	}
	h, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil || h < 0 || h > 23 {
		return fallback
	}
	return h
}

// SleepDuration returns the hours between bed and wake, wrapping past midnight.
func SleepDuration(bedHour, wakeHour int) int {
	hours := wakeHour - bedHour
	if hours < 0 {
		hours += 24
	}
	return hours
}

// SleepWindow decodes bed and wake buckets into hours slept. ok is false when
// either bucket is empty, in which case Defaults.SleepHours is returned.
func SleepWindow(bedTime, wakeTime string) (hours int, ok bool) {
	if strings.TrimSpace(bedTime) == "" || strings.TrimSpace(wakeTime) == "" {
		return Defaults.SleepHours, false
	}
	bed := ClockHour(bedTime, Defaults.BedHour)
	wake := ClockHour(wakeTime, Defaults.WakeHour)
	return SleepDuration(bed, wake), true
}

func number(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
