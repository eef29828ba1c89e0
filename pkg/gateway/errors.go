package gateway

import (
	"errors"

	"fittrack/domain"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrAuth          = errors.New("not authenticated")
	ErrRemote        = errors.New("remote call failed")
	ErrAnalysisEmpty = errors.New(domain.MessageNoFoodDetected)
	ErrCancelled     = errors.New("cancelled")
)

// Error is the single error type surfaced to callers. Message is always
// fit to show to the user.
type Error struct {
	Kind    error
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: ErrValidation, Message: message}
}

func Cancelled() *Error {
	return &Error{Kind: ErrCancelled, Message: "Cancelled"}
}

// Message extracts the user-facing text of err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}

func remote(status int, message string, cause error) *Error {
	if message == "" {
		message = domain.MessageSomethingWentWrong
	}
	kind := ErrRemote
	if status == 401 {
		kind = ErrAuth
	}
	return &Error{Kind: kind, Status: status, Message: message, Err: cause}
}
