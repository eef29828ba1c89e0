package domain

import (
	"errors"
	"time"
)

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

var MealTypes = []string{MealBreakfast, MealLunch, MealDinner, MealSnack}

var (
	MessageSuccessAddFoodLog    = "food log added successfully"
	MessageSuccessDeleteFoodLog = "food log deleted successfully"
	MessageSuccessGetFoodLogs   = "food logs retrieved successfully"

	MessageFailedAddFoodLog    = "failed to add food log"
	MessageFailedDeleteFoodLog = "failed to delete food log"
	MessageFailedGetFoodLogs   = "failed to retrieve food logs"

	MessageFillAllFields = "Please fill in all fields"

	ErrFillAllFields      = errors.New(MessageFillAllFields)
	ErrFoodLogNotFound    = errors.New("food log not found")
	ErrUnauthorizedAccess = errors.New("unauthorized access to log entry")
	ErrInvalidDate        = errors.New("invalid date, expected YYYY-MM-DD")
)

type (
	FoodLogDraft struct {
		Name     string `json:"name" validate:"notblank,max=200"`
		Calories int    `json:"calories" validate:"min=1"`
		MealType string `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
		ImageURL string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	}

	CreateFoodLogRequest struct {
		Data FoodLogDraft `json:"data"`
	}

	FoodLog struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Calories  int       `json:"calories"`
		MealType  string    `json:"mealType"`
		ImageURL  string    `json:"imageUrl,omitempty"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

func (f FoodLog) CreatedOn() time.Time { return f.CreatedAt }
func (f FoodLog) Kcal() int            { return f.Calories }

// NewQuickFoodDraft pre-fills the meal category for the quick add shortcut.
func NewQuickFoodDraft(mealType string) FoodLogDraft {
	return FoodLogDraft{MealType: mealType}
}

// MealTypeAt infers the meal category from the hour of t:
// 00-11 breakfast, 12-15 lunch, 16-17 snack, otherwise dinner.
func MealTypeAt(t time.Time) string {
	switch hour := t.Hour(); {
	case hour < 12:
		return MealBreakfast
	case hour < 16:
		return MealLunch
	case hour < 18:
		return MealSnack
	default:
		return MealDinner
	}
}
