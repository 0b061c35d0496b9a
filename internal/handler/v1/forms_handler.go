package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carepulse/carepulse-api/internal/forms"
)

// FormsHandler serves the form definitions the client renders: field
// lists with kinds, options, and the post-submit route.
type FormsHandler struct{}

func NewFormsHandler() *FormsHandler {
	return &FormsHandler{}
}

func (h *FormsHandler) Get(c *gin.Context) {
	form, err := forms.ByName(c.Param("name"))
	if err != nil {
		respondError(c, http.StatusNotFound, "unknown form")
		return
	}

	controls, err := form.Controls()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{
		"name":       form.Name,
		"next_route": form.NextRoute,
		"controls":   controls,
	})
}
