package domain

import (
	"errors"
	"time"
)

const (
	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"

	MinAge = 13
	MaxAge = 120
)

var Goals = []string{GoalLose, GoalMaintain, GoalGain}

var (
	MessageSuccessRegister      = "user registered successfully"
	MessageSuccessLogin         = "user logged in successfully"
	MessageSuccessLogout        = "user logged out successfully"
	MessageSuccessGetUser       = "user retrieved successfully"
	MessageSuccessUpdateProfile = "Profile updated successfully"

	MessageFailedRegister      = "failed to register user"
	MessageFailedLogin         = "failed to login"
	MessageFailedLogout        = "failed to logout"
	MessageFailedGetUser       = "failed to retrieve user"
	MessageFailedUpdateProfile = "Failed to update profile"

	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrUsernameAlreadyExists = errors.New("username already taken")
	ErrInvalidCredentials    = errors.New("invalid identifier or password")
	ErrInvalidAge            = errors.New("Please enter a valid age (13–120)")
	ErrWeightRequired        = errors.New("Please enter your weight")
	ErrInvalidGoal           = errors.New("Please choose a goal: lose, maintain or gain")
)

type (
	RegisterRequest struct {
		Username string `json:"username" validate:"required,min=3,max=50"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	LoginRequest struct {
		Identifier string `json:"identifier" validate:"required"`
		Password   string `json:"password" validate:"required"`
	}

	AuthResponse struct {
		JWT  string `json:"jwt"`
		User User   `json:"user"`
	}

	// User is the profile as exchanged with clients. Zero values mean "not
	// set": a zero Height disables BMI.
	User struct {
		ID                 string    `json:"id"`
		Username           string    `json:"username"`
		Email              string    `json:"email"`
		Age                int       `json:"age"`
		Weight             float64   `json:"weight"`
		Height             float64   `json:"height"`
		Goal               string    `json:"goal"`
		DailyCalorieIntake int       `json:"dailyCalorieIntake"`
		DailyCalorieBurn   int       `json:"dailyCalorieBurn"`
		CreatedAt          time.Time `json:"createdAt"`
		Token              string    `json:"token,omitempty"`
	}

	// ProfileForm is the full body of PUT /api/users/{id}.
	ProfileForm struct {
		Age                int     `json:"age" validate:"omitempty,min=13,max=120"`
		Weight             float64 `json:"weight" validate:"omitempty,gt=0,lte=500"`
		Height             float64 `json:"height" validate:"omitempty,gt=0,lte=300"`
		Goal               string  `json:"goal" validate:"omitempty,oneof=lose maintain gain"`
		DailyCalorieIntake int     `json:"dailyCalorieIntake" validate:"omitempty,min=0,max=20000"`
		DailyCalorieBurn   int     `json:"dailyCalorieBurn" validate:"omitempty,min=0,max=20000"`
	}
)

// Onboarded reports whether age, weight and goal are all set.
func (u User) Onboarded() bool {
	return u.Age > 0 && u.Weight > 0 && u.Goal != ""
}

// Form returns the editable part of the profile.
func (u User) Form() ProfileForm {
	return ProfileForm{
		Age:                u.Age,
		Weight:             u.Weight,
		Height:             u.Height,
		Goal:               u.Goal,
		DailyCalorieIntake: u.DailyCalorieIntake,
		DailyCalorieBurn:   u.DailyCalorieBurn,
	}
}

// ValidateOnboarding applies the onboarding wizard rules: age, weight and
// goal are mandatory.
func (f ProfileForm) ValidateOnboarding() error {
	if f.Age < MinAge || f.Age > MaxAge {
		return ErrInvalidAge
	}
	if f.Weight <= 0 {
		return ErrWeightRequired
	}
	for _, g := range Goals {
		if f.Goal == g {
			return nil
		}
	}
	return ErrInvalidGoal
}
