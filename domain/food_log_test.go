package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMealTypeAt(t *testing.T) {
	cases := map[int]string{
		0:  MealBreakfast,
		11: MealBreakfast,
		12: MealLunch,
		15: MealLunch,
		16: MealSnack,
		17: MealSnack,
		18: MealDinner,
		23: MealDinner,
	}
	for hour, want := range cases {
		at := time.Date(2026, 3, 10, hour, 30, 0, 0, time.UTC)
		assert.Equal(t, want, MealTypeAt(at), "hour %d", hour)
	}
}

func TestQuickActivityDraft(t *testing.T) {
	q, ok := FindQuickActivity("  walking ")
	assert.True(t, ok)

	draft := NewQuickActivityDraft(q)
	assert.Equal(t, ActivityLogDraft{Name: "Walking", Duration: 30, Calories: 120}, draft)
	assert.Equal(t, 240, draft.WithDuration(60).Calories)

	custom := ActivityLogDraft{Name: "Climbing", Duration: 30, Calories: 280}.WithDuration(45)
	assert.Equal(t, 45, custom.Duration)
	assert.Equal(t, 280, custom.Calories)

	_, ok = FindQuickActivity("Skydiving")
	assert.False(t, ok)
}

func TestOnboarding(t *testing.T) {
	assert.ErrorIs(t, ProfileForm{Age: 12, Weight: 60, Goal: GoalLose}.ValidateOnboarding(), ErrInvalidAge)
	assert.ErrorIs(t, ProfileForm{Age: 121, Weight: 60, Goal: GoalLose}.ValidateOnboarding(), ErrInvalidAge)
	assert.ErrorIs(t, ProfileForm{Age: 30, Goal: GoalLose}.ValidateOnboarding(), ErrWeightRequired)
	assert.ErrorIs(t, ProfileForm{Age: 30, Weight: 60, Goal: "bulk"}.ValidateOnboarding(), ErrInvalidGoal)
	assert.NoError(t, ProfileForm{Age: 13, Weight: 60, Goal: GoalGain}.ValidateOnboarding())

	assert.True(t, User{Age: 30, Weight: 60, Goal: GoalMaintain}.Onboarded())
	assert.False(t, User{Age: 30, Goal: GoalMaintain}.Onboarded())
}
