package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	MinActivityDuration = 1
	MaxActivityDuration = 300
	MinActivityCalories = 1
	MaxActivityCalories = 2000

	QuickActivityDuration = 30
)

var (
	MessageSuccessAddActivityLog    = "activity log added successfully"
	MessageSuccessDeleteActivityLog = "activity log deleted successfully"
	MessageSuccessGetActivityLogs   = "activity logs retrieved successfully"

	MessageFailedAddActivityLog    = "failed to add activity log"
	MessageFailedDeleteActivityLog = "failed to delete activity log"
	MessageFailedGetActivityLogs   = "failed to retrieve activity logs"

	MessageInvalidDuration         = "Duration must be between 1 and 300 minutes"
	MessageInvalidActivityCalories = "Calories must be between 1 and 2000"

	ErrActivityLogNotFound     = errors.New("activity log not found")
	ErrInvalidDuration         = errors.New(MessageInvalidDuration)
	ErrInvalidActivityCalories = errors.New(MessageInvalidActivityCalories)
)

// QuickActivity is a one-tap activity template with a fixed burn rate.
type QuickActivity struct {
	Name string `json:"name"`
	Rate int    `json:"rate"` // kcal per minute
}

var QuickActivities = []QuickActivity{
	{Name: "Walking", Rate: 4},
	{Name: "Running", Rate: 11},
	{Name: "Cycling", Rate: 8},
	{Name: "Swimming", Rate: 10},
	{Name: "Yoga", Rate: 3},
	{Name: "Weight Training", Rate: 6},
	{Name: "HIIT", Rate: 12},
}

type (
	ActivityLogDraft struct {
		Name     string `json:"name" validate:"notblank,max=200"`
		Duration int    `json:"duration" validate:"min=1,max=300"`
		Calories int    `json:"calories" validate:"min=1,max=2000"`
	}

	CreateActivityLogRequest struct {
		Data ActivityLogDraft `json:"data"`
	}

	ActivityLog struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Duration  int       `json:"duration"`
		Calories  int       `json:"calories"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

func (a ActivityLog) CreatedOn() time.Time { return a.CreatedAt }
func (a ActivityLog) Kcal() int            { return a.Calories }
func (a ActivityLog) Minutes() int         { return a.Duration }

// FindQuickActivity looks a quick-pick up by name, case-insensitively.
func FindQuickActivity(name string) (QuickActivity, bool) {
	for _, q := range QuickActivities {
		if strings.EqualFold(q.Name, strings.TrimSpace(name)) {
			return q, true
		}
	}
	return QuickActivity{}, false
}

func NewQuickActivityDraft(q QuickActivity) ActivityLogDraft {
	return ActivityLogDraft{
		Name:     q.Name,
		Duration: QuickActivityDuration,
		Calories: QuickActivityDuration * q.Rate,
	}
}

// WithDuration sets the duration; drafts named after a quick-pick get their
// calories re-derived from its rate.
func (d ActivityLogDraft) WithDuration(minutes int) ActivityLogDraft {
	d.Duration = minutes
	if q, ok := FindQuickActivity(d.Name); ok {
		d.Calories = minutes * q.Rate
	}
	return d
}
