package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/carepulse/carepulse-api/internal/roster"
)

// ReferenceHandler serves the static option lists the forms are built
// from. The data is compiled in; there is no admin surface to edit it.
type ReferenceHandler struct{}

func NewReferenceHandler() *ReferenceHandler {
	return &ReferenceHandler{}
}

func (h *ReferenceHandler) Doctors(c *gin.Context) {
	respondOK(c, roster.Doctors)
}

func (h *ReferenceHandler) IdentificationTypes(c *gin.Context) {
	respondOK(c, roster.IdentificationTypes)
}

func (h *ReferenceHandler) Genders(c *gin.Context) {
	respondOK(c, roster.GenderOptions)
}
