package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors shared by the service layer and the controllers.
var (
	ErrInvalidPayload         = errors.New("invalid_payload")
	ErrUnknownRole            = errors.New("unknown_role")
	ErrNotFound               = errors.New("not_found")
	ErrDuplicateNotification  = errors.New("duplicate_notification")
	ErrMissingAPIKey          = errors.New("missing_api_key")
	ErrUnknownProvider        = errors.New("unknown_geocoding_provider")
	ErrExternalServiceFailure = errors.New("external_service_failure")
)

// AppError carries an HTTP status and public code from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
