package stats

import (
	"sort"
	"time"

	"fittrack/domain"
)

// Targets are the user's daily goals. Zero values fall back to the defaults.
type Targets struct {
	Intake int
	Burn   int
}

func TargetsFor(u domain.User) Targets {
	return Targets{Intake: u.DailyCalorieIntake, Burn: u.DailyCalorieBurn}
}

func (t Targets) withDefaults() Targets {
	if t.Intake <= 0 {
		t.Intake = DefaultIntakeGoal
	}
	if t.Burn <= 0 {
		t.Burn = DefaultBurnGoal
	}
	return t
}

// WeeklySeries returns exactly seven buckets, oldest first, ending on now's day.
func WeeklySeries[F Entry, A Entry](food []F, activity []A, now time.Time) []domain.DayBucket {
	intake := make(map[string]int, len(food))
	for _, f := range food {
		intake[DayKey(f.CreatedOn())] += f.Kcal()
	}
	burn := make(map[string]int, len(activity))
	for _, a := range activity {
		burn[DayKey(a.CreatedOn())] += a.Kcal()
	}

	buckets := make([]domain.DayBucket, 0, WeekLength)
	for i := WeekLength - 1; i >= 0; i-- {
		day := now.UTC().AddDate(0, 0, -i)
		key := DayKey(day)
		buckets = append(buckets, domain.DayBucket{
			Date:   key,
			Day:    day.Format("Mon"),
			Intake: intake[key],
			Burn:   burn[key],
		})
	}
	return buckets
}

// Summarize computes the figures of one day (now's day) of a snapshot.
func Summarize[F Entry, A Timed](food []F, activity []A, targets Targets, now time.Time) domain.DailySummary {
	targets = targets.withDefaults()
	today := DayKey(now)

	todayFood := EntriesOnDate(food, today)
	todayActivity := EntriesOnDate(activity, today)
	yesterdayActivity := EntriesOnDate(activity, DaysAgo(now, 1))

	consumed := SumCalories(todayFood)
	burned := SumCalories(todayActivity)
	minutes := SumDuration(todayActivity)

	return domain.DailySummary{
		Date:                   today,
		Consumed:               consumed,
		Burned:                 burned,
		ActiveMinutes:          minutes,
		IntakeGoal:             targets.Intake,
		BurnGoal:               targets.Burn,
		Remaining:              Remaining(targets.Intake, consumed),
		ConsumedPct:            Percent(consumed, targets.Intake),
		BurnedPct:              Percent(burned, targets.Burn),
		ActiveMinutesChangePct: PercentChange(minutes, SumDuration(yesterdayActivity)),
		IntensityScore:         IntensityScore(burned, minutes),
		Macros:                 MacroTotals(todayFood),
		FoodCount:              len(todayFood),
		ActivityCount:          len(todayActivity),
	}
}

// BuildDashboard assembles everything the dashboard shows for now's day.
func BuildDashboard(user domain.User, food []domain.FoodLog, activity []domain.ActivityLog, now time.Time) domain.DashboardResponse {
	active := ActiveDaysInWindow(activity, now, WeekLength)
	return domain.DashboardResponse{
		Summary:           Summarize(food, activity, TargetsFor(user), now),
		Week:              WeeklySeries(food, activity, now),
		StreakDays:        StreakDays(activity, now),
		ActiveDays:        active,
		WeeklyGoalPercent: WeeklyGoalPercent(active),
		BMI:               BMIFor(user),
		TotalFoodLogs:     len(food),
		TotalActivityLogs: len(activity),
	}
}

// Recent returns a copy of entries sorted newest first.
func Recent[E Dated](entries []E) []E {
	out := append([]E(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedOn().After(out[j].CreatedOn())
	})
	return out
}
