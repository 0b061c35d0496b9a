package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/carepulse/carepulse-api/internal/gate"
	"github.com/carepulse/carepulse-api/internal/service"
)

type GateHandler struct {
	svc *service.GateService
}

func NewGateHandler(svc *service.GateService) *GateHandler {
	return &GateHandler{svc: svc}
}

type verifyRequest struct {
	Passkey string `json:"passkey"`
}

// Verify checks an entered passkey and, on success, returns the encoded
// key to store plus a fresh admin session token.
func (h *GateHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.svc.Verify(c.Request.Context(), req.Passkey, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, session)
}

type mountRequest struct {
	EncodedKey string `json:"encoded_key"`
	Unlocked   bool   `json:"unlocked"`
}

// Mount evaluates the key the client already holds when the gate view
// loads. Navigation fires only on the mount that flips the gate open.
func (h *GateHandler) Mount(c *gin.Context) {
	var req mountRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.svc.Mount(c.Request.Context(), req.EncodedKey, req.Unlocked, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, session)
}

// Close dismisses the gate; the visitor returns to the entry route.
func (h *GateHandler) Close(c *gin.Context) {
	respondOK(c, gin.H{"state": gate.StateLocked, "route": gate.EntryRoute})
}
