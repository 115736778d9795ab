package utils

import (
	"errors"
	"net/http"
	"time"

	"firewatch/internal/errs"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Meta      *Meta       `json:"meta,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type Meta struct {
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Total      int64           `json:"total,omitempty"`
	Count      int             `json:"count,omitempty"`
}

func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func SuccessResponseWithMeta(c *gin.Context, message string, data interface{}, meta *Meta) {
	c.JSON(http.StatusOK, APIResponse{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		Meta:      meta,
		Timestamp: time.Now(),
	})
}

func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, APIResponse{
		Status: StatusError,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now(),
	})
}

func ErrorResponseWithDetails(c *gin.Context, statusCode int, code, message string, details map[string]string) {
	c.JSON(statusCode, APIResponse{
		Status: StatusError,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now(),
	})
}

func BadRequestResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func NotFoundResponse(c *gin.Context, resource string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", resource+" not found")
}

func ConflictResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, "CONFLICT", message)
}

func UnauthorizedResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", ErrUnauthorized)
}

func ForbiddenResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", ErrForbidden)
}

func InternalServerErrorResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", ErrInternalServer)
}

// ServiceErrorResponse maps the domain error taxonomy onto HTTP status codes.
// TooEarly additionally exposes the computed cutoff so callers can schedule
// a retry.
func ServiceErrorResponse(c *gin.Context, err error) {
	var tooEarly *errs.TooEarlyError
	if errors.As(err, &tooEarly) {
		ErrorResponseWithDetails(c, http.StatusConflict, "TOO_EARLY", err.Error(), map[string]string{
			"cutoff": FormatTimeISO(tooEarly.Cutoff),
		})
		return
	}

	var unitConflict *errs.ActiveUnitConflictError
	if errors.As(err, &unitConflict) {
		ErrorResponseWithDetails(c, http.StatusConflict, "CONFLICT", err.Error(), map[string]string{
			"blocking_unit_id":   unitConflict.UnitID.Hex(),
			"blocking_unit_name": unitConflict.UnitName,
		})
		return
	}

	switch {
	case errors.Is(err, errs.ErrValidation):
		ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, errs.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, errs.ErrConflict):
		ErrorResponse(c, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, errs.ErrInvalidState):
		ErrorResponse(c, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, errs.ErrTooEarly):
		ErrorResponse(c, http.StatusConflict, "TOO_EARLY", err.Error())
	default:
		InternalServerErrorResponse(c)
	}
}
