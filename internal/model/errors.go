package model

import "fmt"

// ErrorCode is the machine-readable code carried by APIError.
type ErrorCode string

const (
	CodeBadRequest    ErrorCode = "BAD_REQUEST"
	CodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	CodeForbidden     ErrorCode = "FORBIDDEN"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeConflict      ErrorCode = "CONFLICT"
	CodeLimitReached  ErrorCode = "LIMIT_REACHED"
	CodeRateLimited   ErrorCode = "RATE_LIMITED"
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeNetworkError  ErrorCode = "NETWORK_ERROR"
)

const (
	NetworkErrorMessage   = "connection error, check your network and retry"
	ForbiddenMessage      = "you don't have permission to perform this action"
	LimitReachedMessage   = "your plan limit has been reached, upgrade your plan to continue"
	RateLimitedMessage    = "too many attempts, wait a moment and try again"
	GenericErrorMessage   = "something went wrong, please try again"
	InvalidRequestMessage = "invalid request"
)

// Codes returns every code the portal knows how to present.
func Codes() []ErrorCode {
	return []ErrorCode{
		CodeBadRequest,
		CodeUnauthorized,
		CodeForbidden,
		CodeNotFound,
		CodeConflict,
		CodeLimitReached,
		CodeRateLimited,
		CodeInternalError,
		CodeNetworkError,
	}
}

// Known reports whether c belongs to the closed set returned by Codes.
func (c ErrorCode) Known() bool {
	for _, k := range Codes() {
		if c == k {
			return true
		}
	}
	return false
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is the error half of the envelope.
type APIError struct {
	Message string       `json:"message"`
	Code    ErrorCode    `json:"code"`
	Details []FieldError `json:"details,omitempty"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Codes whose backend message is shown verbatim.
var passthroughCodes = map[ErrorCode]bool{
	CodeBadRequest:   true,
	CodeUnauthorized: true,
	CodeNotFound:     true,
	CodeConflict:     true,
}

// Codes presented with a fixed portal message.
var fixedMessages = map[ErrorCode]string{
	CodeForbidden:     ForbiddenMessage,
	CodeLimitReached:  LimitReachedMessage,
	CodeRateLimited:   RateLimitedMessage,
	CodeNetworkError:  NetworkErrorMessage,
	CodeInternalError: GenericErrorMessage,
}

// UserMessage returns the notification text shown for the error. Codes
// outside the closed set fall back to the generic message.
func (e APIError) UserMessage() string {
	if passthroughCodes[e.Code] {
		if e.Message != "" {
			return e.Message
		}
		return GenericErrorMessage
	}
	if msg, ok := fixedMessages[e.Code]; ok {
		return msg
	}
	return GenericErrorMessage
}

// ValidationFailure builds the BAD_REQUEST error returned for input rejected
// before it reaches the network.
func ValidationFailure(details []FieldError) APIError {
	return APIError{
		Code:    CodeBadRequest,
		Message: InvalidRequestMessage,
		Details: details,
	}
}
