package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/carepulse/carepulse-api/internal/domain/appointment"
	"github.com/carepulse/carepulse-api/internal/service"
)

type AdminHandler struct {
	svc *service.AppointmentService
}

func NewAdminHandler(svc *service.AppointmentService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// RecentAppointments serves the dashboard payload: scheduled, pending,
// and cancelled counts plus the newest requests.
func (h *AdminHandler) RecentAppointments(c *gin.Context) {
	q := &appointment.RecentListQuery{
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "page_size", 50),
	}

	recent, err := h.svc.RecentAppointments(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, recent)
}
