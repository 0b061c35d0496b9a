package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carepulse/carepulse-api/internal/domain"
	"github.com/carepulse/carepulse-api/internal/domain/appointment"
	"github.com/carepulse/carepulse-api/internal/domain/patient"
	"github.com/carepulse/carepulse-api/internal/gate"
	"github.com/carepulse/carepulse-api/internal/service"
	"github.com/carepulse/carepulse-api/internal/storage"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DuplicateIdentityResponse carries the existing user alongside the
// conflict so the client can resume the flow with it.
type DuplicateIdentityResponse struct {
	Error string `json:"error"`
	User  any    `json:"user"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	var dupErr *service.DuplicateIdentityError
	if errors.As(err, &dupErr) {
		c.JSON(http.StatusConflict, DuplicateIdentityResponse{
			Error: dupErr.Error(),
			User:  dupErr.Existing,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, appointment.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, patient.ErrPatientAlreadyRegistered):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, patient.ErrConsentRequired),
		errors.Is(err, appointment.ErrInvalidStatusTransition),
		errors.Is(err, appointment.ErrCancellationReasonMissing),
		errors.Is(err, appointment.ErrUnknownPhysician):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, gate.ErrInvalidPasskey):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "invalid passkey",
			Code:  "GATE_DENIED",
		})

	case errors.Is(err, storage.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "document upload is temporarily unavailable",
			Code:  "STORAGE_UNAVAILABLE",
		})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}

	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return defaultVal
}
