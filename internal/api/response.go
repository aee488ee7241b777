package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/liftform/shiftcraft/internal/entity"
	"github.com/liftform/shiftcraft/internal/repository"
)

// APIResponse is the standard response envelope for every endpoint.
type APIResponse struct {
	Data       interface{}              `json:"data,omitempty"`
	Validation *entity.ValidationResult `json:"validation,omitempty"`
	Error      *ErrorResponse           `json:"error,omitempty"`
	Meta       ResponseMeta             `json:"meta"`
}

// ErrorResponse contains error details.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResponseMeta carries response metadata.
type ResponseMeta struct {
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
}

func newMeta() ResponseMeta {
	return ResponseMeta{Timestamp: time.Now().UTC(), Version: "1.0"}
}

// SuccessResponse writes a 200 with data and a passing validation envelope.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, &APIResponse{
		Data:       data,
		Validation: entity.NewValidationResult(),
		Meta:       newMeta(),
	})
}

// CreatedResponse writes a 201 with data and a passing validation envelope.
func CreatedResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, &APIResponse{
		Data:       data,
		Validation: entity.NewValidationResult(),
		Meta:       newMeta(),
	})
}

// ErrorJSON writes an error response at the given status code.
func ErrorJSON(c echo.Context, status int, code, message string) error {
	return c.JSON(status, &APIResponse{
		Error:      &ErrorResponse{Code: code, Message: message},
		Validation: entity.NewValidationError(code, message),
		Meta:       newMeta(),
	})
}

// ValidationErrorJSON writes the engine's multi-message diagnostics as the
// response body's validation field, at 422.
func ValidationErrorJSON(c echo.Context, result *entity.ValidationResult) error {
	return c.JSON(http.StatusUnprocessableEntity, &APIResponse{
		Validation: result,
		Meta:       newMeta(),
	})
}

// RepositoryErrorJSON maps a repository error onto an HTTP status: 404 for
// NotFoundError, 400 for ValidationError, 500 otherwise.
func RepositoryErrorJSON(c echo.Context, err error) error {
	switch e := err.(type) {
	case *repository.NotFoundError:
		return ErrorJSON(c, http.StatusNotFound, "NOT_FOUND", e.Error())
	case *repository.ValidationError:
		return ErrorJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", e.Error())
	default:
		return ErrorJSON(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
