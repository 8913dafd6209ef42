package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	contextutils "lazverb/internal/utils"
)

// requestLocale picks the error message language from Accept-Language
func requestLocale(c *gin.Context) string {
	if contextutils.ParseLocale(c.GetHeader("Accept-Language")) == contextutils.LocaleTurkish {
		return string(contextutils.LocaleTurkish)
	}
	return string(contextutils.LocaleEnglish)
}

// StandardizeHTTPError creates consistent HTTP error responses with structured error information
func StandardizeHTTPError(c *gin.Context, statusCode int, message, details string) {
	var errorCode contextutils.ErrorCode
	var severity contextutils.SeverityLevel

	switch statusCode {
	case http.StatusBadRequest:
		errorCode = contextutils.ErrorCodeInvalidInput
		severity = contextutils.SeverityWarn
	case http.StatusNotFound:
		errorCode = contextutils.ErrorCodeRecordNotFound
		severity = contextutils.SeverityInfo
	case http.StatusServiceUnavailable:
		errorCode = contextutils.ErrorCodeServiceUnavailable
		severity = contextutils.SeverityError
	default:
		errorCode = contextutils.ErrorCodeInternalError
		severity = contextutils.SeverityError
	}

	appErr := contextutils.NewAppError(errorCode, severity, message, details)
	body := appErr.ToJSONWithLocale(requestLocale(c))
	// keep the caller's message rather than the generic localized one
	body["message"] = message
	c.JSON(statusCode, body)
}

// StandardizeAppError sends a structured, localized error response using AppError
func StandardizeAppError(c *gin.Context, err *contextutils.AppError) {
	statusCode := mapErrorCodeToHTTPStatus(err.Code)
	c.JSON(statusCode, err.ToJSONWithLocale(requestLocale(c)))
}

// HandleValidationError handles input validation errors consistently
func HandleValidationError(c *gin.Context, field string, value interface{}, reason string) {
	appErr := contextutils.NewAppError(
		contextutils.ErrorCodeInvalidInput,
		contextutils.SeverityWarn,
		fmt.Sprintf("Invalid %s", field),
		fmt.Sprintf("Value '%v' is invalid: %s", value, reason),
	)

	StandardizeAppError(c, appErr)
}

// HandleAppError handles any AppError and sends appropriate HTTP response
func HandleAppError(c *gin.Context, err error) {
	var appErr *contextutils.AppError
	if !errors.As(err, &appErr) {
		_ = c.Error(err)
		StandardizeHTTPError(c, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	_ = c.Error(appErr)
	// A request that was processed but produced nothing is not a failure
	if appErr.Code == contextutils.ErrorCodeNoOutputProduced {
		body := appErr.ToJSONWithLocale(requestLocale(c))
		body["status"] = "empty"
		c.JSON(http.StatusOK, body)
		return
	}
	StandardizeAppError(c, appErr)
}

// mapErrorCodeToHTTPStatus maps AppError codes to appropriate HTTP status codes
func mapErrorCodeToHTTPStatus(code contextutils.ErrorCode) int {
	switch code {
	case contextutils.ErrorCodeNoOutputProduced:
		return http.StatusOK

	// 4xx Client Errors
	case contextutils.ErrorCodeInvalidInput, contextutils.ErrorCodeValidationFailed,
		contextutils.ErrorCodeInvalidTenseOrAspect, contextutils.ErrorCodeInvalidSubjectObject:
		return http.StatusBadRequest

	case contextutils.ErrorCodeMarkerRequiresObject, contextutils.ErrorCodeConflictingMarkers,
		contextutils.ErrorCodeVerbClassForbidsObject, contextutils.ErrorCodeVerbClassForbidsMarker:
		return http.StatusUnprocessableEntity

	case contextutils.ErrorCodeInfinitiveNotFound, contextutils.ErrorCodeRecordNotFound:
		return http.StatusNotFound

	// 5xx Server Errors
	case contextutils.ErrorCodeServiceUnavailable, contextutils.ErrorCodeDatabaseConnection:
		return http.StatusServiceUnavailable

	case contextutils.ErrorCodeTimeout:
		return http.StatusRequestTimeout

	case contextutils.ErrorCodeDatabaseQuery, contextutils.ErrorCodeDictionaryInvalid,
		contextutils.ErrorCodeInternalError:
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}
