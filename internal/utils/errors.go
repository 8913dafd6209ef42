// Package contextutils provides error handling utilities and standardized error types
// for consistent error management across the conjugator.
package contextutils

import (
	"context"
	"fmt"
	"strings"
)

// ErrorCode represents a standardized error code for API responses
type ErrorCode string

const (
	// Database error codes

	// ErrorCodeDatabaseConnection indicates a database connection error
	ErrorCodeDatabaseConnection ErrorCode = "DATABASE_CONNECTION_ERROR"
	// ErrorCodeDatabaseQuery indicates a database query error
	ErrorCodeDatabaseQuery ErrorCode = "DATABASE_QUERY_ERROR"
	// ErrorCodeRecordNotFound indicates that a requested record was not found
	ErrorCodeRecordNotFound ErrorCode = "RECORD_NOT_FOUND"

	// Validation error codes

	// ErrorCodeInvalidInput indicates that the provided input is invalid
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrorCodeValidationFailed indicates that validation has failed
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Conjugation error codes

	// ErrorCodeInvalidSubjectObject marks a co-referent subject/object pair
	ErrorCodeInvalidSubjectObject ErrorCode = "INVALID_SUBJECT_OBJECT_COMBINATION"
	// ErrorCodeMarkerRequiresObject indicates a marker was requested without an object
	ErrorCodeMarkerRequiresObject ErrorCode = "MARKER_REQUIRES_OBJECT"
	// ErrorCodeConflictingMarkers indicates mutually exclusive markers were requested
	ErrorCodeConflictingMarkers ErrorCode = "CONFLICTING_MARKERS"
	// ErrorCodeVerbClassForbidsObject indicates the verb does not take an object
	ErrorCodeVerbClassForbidsObject ErrorCode = "VERB_CLASS_FORBIDS_OBJECT"
	// ErrorCodeVerbClassForbidsMarker indicates the verb does not take markers
	ErrorCodeVerbClassForbidsMarker ErrorCode = "VERB_CLASS_FORBIDS_MARKER"
	// ErrorCodeInfinitiveNotFound indicates the infinitive is in no verb table
	ErrorCodeInfinitiveNotFound ErrorCode = "INFINITIVE_NOT_FOUND"
	// ErrorCodeNoOutputProduced indicates a valid request that produced no forms
	ErrorCodeNoOutputProduced ErrorCode = "NO_OUTPUT_PRODUCED"
	// ErrorCodeInvalidTenseOrAspect indicates an unknown tense or aspect
	ErrorCodeInvalidTenseOrAspect ErrorCode = "INVALID_TENSE_OR_ASPECT"

	// Service error codes

	// ErrorCodeServiceUnavailable indicates that the service is temporarily unavailable
	ErrorCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrorCodeTimeout indicates that a request has timed out
	ErrorCodeTimeout ErrorCode = "REQUEST_TIMEOUT"
	// ErrorCodeInternalError indicates an internal server error
	ErrorCodeInternalError ErrorCode = "INTERNAL_SERVER_ERROR"
	// ErrorCodeDictionaryInvalid indicates a verb dictionary file failed to parse or validate
	ErrorCodeDictionaryInvalid ErrorCode = "DICTIONARY_INVALID"
)

// SeverityLevel represents the severity of an error for logging and monitoring
type SeverityLevel string

const (
	// SeverityDebug indicates debug-level errors for development
	SeverityDebug SeverityLevel = "debug"
	// SeverityInfo indicates informational errors
	SeverityInfo SeverityLevel = "info"
	// SeverityWarn indicates warning-level errors
	SeverityWarn SeverityLevel = "warn"
	// SeverityError indicates error-level issues
	SeverityError SeverityLevel = "error"
	// SeverityFatal indicates fatal errors that require immediate attention
	SeverityFatal SeverityLevel = "fatal"
)

// AppError represents a structured error with code, severity, and context
type AppError struct {
	Code     ErrorCode
	Severity SeverityLevel
	Message  string
	Details  string
	Cause    error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Code == appErr.Code
	}
	return false
}

// Error types for consistent error handling with associated codes and severity
var (
	// Database errors
	ErrDatabaseConnection = &AppError{
		Code:     ErrorCodeDatabaseConnection,
		Severity: SeverityError,
		Message:  "Database connection failed",
	}

	ErrDatabaseQuery = &AppError{
		Code:     ErrorCodeDatabaseQuery,
		Severity: SeverityError,
		Message:  "Database query failed",
	}

	ErrRecordNotFound = &AppError{
		Code:     ErrorCodeRecordNotFound,
		Severity: SeverityInfo,
		Message:  "Record not found",
	}

	// Validation errors
	ErrInvalidInput = &AppError{
		Code:     ErrorCodeInvalidInput,
		Severity: SeverityWarn,
		Message:  "Invalid input",
	}

	ErrValidationFailed = &AppError{
		Code:     ErrorCodeValidationFailed,
		Severity: SeverityWarn,
		Message:  "Validation failed",
	}

	// Conjugation errors
	ErrInvalidSubjectObject = &AppError{
		Code:     ErrorCodeInvalidSubjectObject,
		Severity: SeverityInfo,
		Message:  "Invalid subject and object combination",
	}

	ErrMarkerRequiresObject = &AppError{
		Code:     ErrorCodeMarkerRequiresObject,
		Severity: SeverityWarn,
		Message:  "Applicative and causative markers require an object",
	}

	ErrConflictingMarkers = &AppError{
		Code:     ErrorCodeConflictingMarkers,
		Severity: SeverityWarn,
		Message:  "Conflicting markers",
	}

	ErrVerbClassForbidsObject = &AppError{
		Code:     ErrorCodeVerbClassForbidsObject,
		Severity: SeverityWarn,
		Message:  "This verb does not take an object",
	}

	ErrVerbClassForbidsMarker = &AppError{
		Code:     ErrorCodeVerbClassForbidsMarker,
		Severity: SeverityWarn,
		Message:  "This verb does not take applicative or causative markers",
	}

	ErrInfinitiveNotFound = &AppError{
		Code:     ErrorCodeInfinitiveNotFound,
		Severity: SeverityInfo,
		Message:  "Infinitive not found",
	}

	ErrNoOutputProduced = &AppError{
		Code:     ErrorCodeNoOutputProduced,
		Severity: SeverityInfo,
		Message:  "No forms were produced for this request",
	}

	ErrInvalidTenseOrAspect = &AppError{
		Code:     ErrorCodeInvalidTenseOrAspect,
		Severity: SeverityWarn,
		Message:  "Invalid tense or aspect",
	}

	// Service errors
	ErrServiceUnavailable = &AppError{
		Code:     ErrorCodeServiceUnavailable,
		Severity: SeverityError,
		Message:  "Service unavailable",
	}

	ErrTimeout = &AppError{
		Code:     ErrorCodeTimeout,
		Severity: SeverityWarn,
		Message:  "Request timeout",
	}

	ErrInternalError = &AppError{
		Code:     ErrorCodeInternalError,
		Severity: SeverityError,
		Message:  "Internal server error",
	}

	ErrDictionaryInvalid = &AppError{
		Code:     ErrorCodeDictionaryInvalid,
		Severity: SeverityError,
		Message:  "Verb dictionary is invalid",
	}
)

// NewAppError creates a new AppError with the specified code, severity, message and details
func NewAppError(code ErrorCode, severity SeverityLevel, message, details string) *AppError {
	return &AppError{
		Code:     code,
		Severity: severity,
		Message:  message,
		Details:  details,
	}
}

// NewAppErrorWithCause creates a new AppError with an underlying cause
func NewAppErrorWithCause(code ErrorCode, severity SeverityLevel, message, details string, cause error) *AppError {
	return &AppError{
		Code:     code,
		Severity: severity,
		Message:  message,
		Details:  details,
		Cause:    cause,
	}
}

// WithDetails returns a copy of a sentinel error carrying request specific details
func (e *AppError) WithDetails(format string, args ...interface{}) *AppError {
	return &AppError{
		Code:     e.Code,
		Severity: e.Severity,
		Message:  e.Message,
		Details:  fmt.Sprintf(format, args...),
		Cause:    e.Cause,
	}
}

// WrapError wraps an error with additional context, preserving AppError structure if possible
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, wrap it with additional details
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:     appErr.Code,
			Severity: appErr.Severity,
			Message:  context,
			Details:  appErr.Error(),
			Cause:    appErr,
		}
	}

	return &AppError{
		Code:     ErrorCodeInternalError,
		Severity: SeverityError,
		Message:  context,
		Details:  err.Error(),
		Cause:    err,
	}
}

// WrapErrorf wraps an error with formatted context, preserving AppError structure if possible
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	if strings.Contains(format, "%w") {
		wrappedErr := fmt.Errorf(format, args...)

		if appErr, ok := err.(*AppError); ok {
			return &AppError{
				Code:     appErr.Code,
				Severity: appErr.Severity,
				Message:  wrappedErr.Error(),
				Details:  appErr.Error(),
				Cause:    wrappedErr,
			}
		}

		return &AppError{
			Code:     ErrorCodeInternalError,
			Severity: SeverityError,
			Message:  wrappedErr.Error(),
			Details:  err.Error(),
			Cause:    wrappedErr,
		}
	}

	context := fmt.Sprintf(format, args...)
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:     appErr.Code,
			Severity: appErr.Severity,
			Message:  context,
			Details:  appErr.Error(),
			Cause:    appErr,
		}
	}

	return &AppError{
		Code:     ErrorCodeInternalError,
		Severity: SeverityError,
		Message:  context,
		Details:  err.Error(),
		Cause:    err,
	}
}

// ErrorWithContextf creates a new error with formatted context
func ErrorWithContextf(format string, args ...interface{}) error {
	return &AppError{
		Code:     ErrorCodeInternalError,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
	}
}

// IsError checks if an error matches a specific AppError type
func IsError(err error, target *AppError) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == target.Code
	}
	return false
}

// AsError attempts to convert an error to an AppError
func AsError(err error, target **AppError) bool {
	if appErr, ok := err.(*AppError); ok {
		*target = appErr
		return true
	}
	return false
}

// GetErrorCode returns the error code from an error if it's an AppError, otherwise returns a default code
func GetErrorCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrorCodeInternalError
}

// GetErrorSeverity returns the severity level from an error if it's an AppError, otherwise returns error
func GetErrorSeverity(err error) SeverityLevel {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Severity
	}
	return SeverityError
}

// IsRetryable determines if an error should be retried based on its type and severity
func IsRetryable(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		switch appErr.Code {
		case ErrorCodeTimeout, ErrorCodeServiceUnavailable, ErrorCodeDatabaseConnection:
			return appErr.Severity != SeverityFatal
		}
	}
	return false
}

// GetErrorLocalizedMessage returns a localized message for the error
func GetErrorLocalizedMessage(err error, locale string) string {
	if appErr, ok := err.(*AppError); ok {
		return GetLocalizedMessageWithDetails(appErr.Code, ParseLocale(locale), appErr.Details)
	}
	return "An error occurred"
}

// ToJSON converts an AppError to a JSON-serializable structure for API responses
func (e *AppError) ToJSON() map[string]interface{} {
	result := map[string]interface{}{
		"code":     string(e.Code),
		"message":  e.Message,
		"severity": string(e.Severity),
		"error":    e.Message,
	}

	if e.Details != "" {
		result["details"] = e.Details
	}

	result["retryable"] = IsRetryable(e)

	if e.Cause != nil {
		switch e.Severity {
		case SeverityError, SeverityFatal:
			result["cause"] = e.Cause.Error()
		}
	}

	return result
}

// ToJSONWithLocale converts an AppError to a JSON-serializable structure with localized messages.
// Both supported languages are always included as message_en and message_tr.
func (e *AppError) ToJSONWithLocale(locale string) map[string]interface{} {
	result := e.ToJSON()
	localizedMessage := GetLocalizedMessage(e.Code, ParseLocale(locale))
	result["message"] = localizedMessage
	result["error"] = localizedMessage
	result["message_en"] = GetLocalizedMessage(e.Code, LocaleEnglish)
	result["message_tr"] = GetLocalizedMessage(e.Code, LocaleTurkish)
	return result
}

// ContextKey represents a context key type for passing values through context
type ContextKey string

const (
	// RequestIDKey is used to store the request ID in context for log correlation
	RequestIDKey ContextKey = "requestID"
)

// GetRequestIDFromContext extracts the request ID from context, returning "" if not found
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRequestID returns a new context with the request ID set
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}
