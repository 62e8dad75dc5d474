package domain

import "fmt"

// AppError is the base domain error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard domain error constructors.

func ErrNotFound(entity string, id int64) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %d not found", entity, id), Status: 404}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Status: 400}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Status: 401}
}

// ErrAdLoad wraps a failed display-ad fetch. The widget surfaces it as
// the error panel; it is never retried automatically.
func ErrAdLoad(cause error) *AppError {
	return &AppError{Code: "AD_LOAD_FAILED", Message: "failed to load advertisement", Status: 502, Cause: cause}
}

// ErrQuizSubmit wraps a failed answer submission. The quiz stays open
// and the widget offers an explicit retry.
func ErrQuizSubmit(cause error) *AppError {
	return &AppError{Code: "QUIZ_SUBMIT_FAILED", Message: "failed to submit quiz answer", Status: 502, Cause: cause}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
