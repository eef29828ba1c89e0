package domain

import (
	"errors"
)

const (
	RoleUser = "user"
)

var (
	MessageUserNotAllowed       = "user not allowed"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageSomethingWentWrong   = "Something went wrong"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenRevoked   = errors.New("token revoked")
)

type (
	// Response is the success envelope of every JSON endpoint.
	Response struct {
		Data    any    `json:"data"`
		Message string `json:"message,omitempty"`
	}

	ErrorBody struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
		Details string `json:"details,omitempty"`
	}

	// ErrorResponse is the error envelope: {"error": {"message": ...}}.
	ErrorResponse struct {
		Error ErrorBody `json:"error"`
	}
)
