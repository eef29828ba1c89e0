package utils

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"fittrack/domain"

	"github.com/go-playground/validator/v10"
)

var (
	Validate      *validator.Validate
	validatorOnce sync.Once
)

func InitValidator() {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		Validate = v
	})
}

// Validator returns the shared validator, initialising it on first use.
func Validator() *validator.Validate {
	InitValidator()
	return Validate
}

// ValidateFoodDraft reports any problem with a food draft as
// domain.ErrFillAllFields.
func ValidateFoodDraft(d domain.FoodLogDraft) error {
	if err := Validator().Struct(d); err != nil {
		return domain.ErrFillAllFields
	}
	return nil
}

// ValidateActivityDraft maps the first failing field to its user-facing
// error, checking duration before calories.
func ValidateActivityDraft(d domain.ActivityLogDraft) error {
	err := Validator().Struct(d)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	failed := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed[fe.Field()] = true
	}
	switch {
	case failed["name"]:
		return domain.ErrFillAllFields
	case failed["duration"]:
		return domain.ErrInvalidDuration
	default:
		return domain.ErrInvalidActivityCalories
	}
}
