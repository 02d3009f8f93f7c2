// Package httputil maps application errors to gin JSON responses.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/accounts/internal/errors"
)

// ErrorResponse is the body of every failed request.
// Success is always false so clients can branch on a single field.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string // empty means the error text itself is returned
}

// errorMappings is checked in order. Credential and code failures carry fixed
// messages so the response never reveals whether an account exists.
var errorMappings = []errorMapping{
	{apperrors.ErrInvalidInput, http.StatusBadRequest, "invalid_input", ""},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", "Account already exists"},
	{apperrors.ErrAuthentication, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials"},
	{apperrors.ErrInvalidOrExpired, http.StatusUnauthorized, "invalid_or_expired_code", "Invalid or expired code"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Authentication is required"},
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found"},
	{apperrors.ErrUnavailable, http.StatusInternalServerError, "unavailable", "Service temporarily unavailable, please retry"},
}

var internalError = errorMapping{
	status:  http.StatusInternalServerError,
	code:    "internal_error",
	message: "An internal error occurred",
}

func mapError(err error) (int, ErrorResponse) {
	mapping := internalError
	for _, m := range errorMappings {
		if apperrors.Is(err, m.target) {
			mapping = m
			break
		}
	}

	message := mapping.message
	if message == "" {
		message = err.Error()
	}
	return mapping.status, ErrorResponse{Error: mapping.code, Message: message}
}

// HandleErrorGin writes the JSON error response for err and logs it, at error
// level for 5xx and warn level otherwise.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode, body := mapError(err)

	if logger != nil {
		attrs := []any{
			slog.Int("status_code", statusCode),
			slog.String("error_code", body.Error),
			slog.Any("error", err),
		}
		if statusCode >= http.StatusInternalServerError {
			logger.Error("request failed", attrs...)
		} else {
			logger.Warn("request rejected", attrs...)
		}
	}

	c.JSON(statusCode, body)
}

// HandleBadRequestGin answers a body that could not be decoded.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: "Malformed request body",
	})
}

// HandleValidationErrorGin answers a request that failed field validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
