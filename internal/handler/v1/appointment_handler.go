package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carepulse/carepulse-api/internal/domain/appointment"
	"github.com/carepulse/carepulse-api/internal/service"
)

type AppointmentHandler struct {
	svc *service.AppointmentService
}

func NewAppointmentHandler(svc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

type createAppointmentRequest struct {
	PatientID        uuid.UUID `json:"patient_id"`
	UserID           uuid.UUID `json:"user_id"`
	PrimaryPhysician string    `json:"primary_physician"`
	Schedule         time.Time `json:"schedule"`
	Reason           string    `json:"reason"`
	Note             string    `json:"note"`
}

// Create records a patient's appointment request in pending status.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.svc.CreateAppointment(c.Request.Context(), &appointment.CreateAppointmentCommand{
		PatientID:        req.PatientID,
		UserID:           req.UserID,
		PrimaryPhysician: req.PrimaryPhysician,
		Schedule:         req.Schedule,
		Reason:           req.Reason,
		Note:             req.Note,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, a)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.svc.GetAppointment(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, a)
}

type updateAppointmentRequest struct {
	Status             appointment.Status `json:"status"`
	Schedule           *time.Time         `json:"schedule"`
	PrimaryPhysician   *string            `json:"primary_physician"`
	CancellationReason *string            `json:"cancellation_reason"`
	ActingUserID       uuid.UUID          `json:"acting_user_id"`
}

// Update applies an admin transition: schedule or cancel.
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.svc.UpdateAppointment(c.Request.Context(), id, &appointment.UpdateAppointmentCommand{
		Status:             req.Status,
		Schedule:           req.Schedule,
		PrimaryPhysician:   req.PrimaryPhysician,
		CancellationReason: req.CancellationReason,
		ActingUserID:       req.ActingUserID,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, a)
}
