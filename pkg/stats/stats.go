// Package stats holds the pure daily aggregation functions shared by the
// API dashboard and the client session. Every function is deterministic for
// a given snapshot and reference time.
package stats

import (
	"math"
	"time"
)

const (
	DateLayout = "2006-01-02"

	DefaultIntakeGoal = 2000
	DefaultBurnGoal   = 500

	WeekLength       = 7
	ActiveDaysTarget = 5
)

type (
	Dated interface {
		CreatedOn() time.Time
	}

	Entry interface {
		Dated
		Kcal() int
	}

	Timed interface {
		Entry
		Minutes() int
	}
)

// DayKey truncates t to its calendar day as printed in an ISO-8601 UTC
// timestamp. It is deliberately not timezone aware.
func DayKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DaysAgo returns the day key n calendar days before now.
func DaysAgo(now time.Time, n int) string {
	return DayKey(now.UTC().AddDate(0, 0, -n))
}

func EntriesOnDate[E Dated](entries []E, date string) []E {
	out := make([]E, 0, len(entries))
	for _, e := range entries {
		if DayKey(e.CreatedOn()) == date {
			out = append(out, e)
		}
	}
	return out
}

func SumCalories[E Entry](entries []E) int {
	total := 0
	for _, e := range entries {
		total += e.Kcal()
	}
	return total
}

func SumDuration[E Timed](entries []E) int {
	total := 0
	for _, e := range entries {
		total += e.Minutes()
	}
	return total
}

func loggedDays[E Dated](entries []E) map[string]struct{} {
	days := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.CreatedOn().IsZero() {
			continue
		}
		days[DayKey(e.CreatedOn())] = struct{}{}
	}
	return days
}

// StreakDays counts consecutive days with at least one entry, walking back
// from now's day. A day without entries (today included) ends the walk.
func StreakDays[E Dated](entries []E, now time.Time) int {
	days := loggedDays(entries)
	streak := 0
	for {
		if _, ok := days[DaysAgo(now, streak)]; !ok {
			return streak
		}
		streak++
	}
}

// ActiveDaysInWindow counts distinct days in the trailing window (today
// included) that have at least one entry. windowDays <= 0 means a week.
func ActiveDaysInWindow[E Dated](entries []E, now time.Time, windowDays int) int {
	if windowDays <= 0 {
		windowDays = WeekLength
	}
	days := loggedDays(entries)
	active := 0
	for i := 0; i < windowDays; i++ {
		if _, ok := days[DaysAgo(now, i)]; ok {
			active++
		}
	}
	return active
}

// Remaining is goal minus consumed. Negative means over the goal.
func Remaining(goal, consumed int) int {
	return goal - consumed
}

// Percent is value/goal as a whole percentage capped at 100.
func Percent(value, goal int) int {
	if goal <= 0 {
		return 0
	}
	return int(round(math.Min(float64(value)/float64(goal)*100, 100)))
}

// PercentChange compares today against yesterday; 0 when yesterday is empty.
func PercentChange(today, yesterday int) int {
	if yesterday <= 0 {
		return 0
	}
	return int(round(float64(today-yesterday) / float64(yesterday) * 100))
}

// IntensityScore is the average burn rate in kcal per minute.
func IntensityScore(calories, minutes int) int {
	if minutes <= 0 {
		return 0
	}
	return int(round(float64(calories) / float64(minutes)))
}

// WeeklyGoalPercent scores active days against the five-day weekly target.
func WeeklyGoalPercent(activeDays int) int {
	return int(math.Min(round(float64(activeDays)/ActiveDaysTarget*100), 100))
}

// round matches half-up rounding of the web client (Math.round).
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}
