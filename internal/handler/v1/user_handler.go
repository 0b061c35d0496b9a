package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/carepulse/carepulse-api/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Create handles the intake form submission.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.svc.CreateUser(c.Request.Context(), &service.CreateUserCommand{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, u)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	u, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, u)
}

type deviceTokenRequest struct {
	Token string `json:"token"`
}

// RegisterDevice stores a push token so booking updates reach the user.
func (h *UserHandler) RegisterDevice(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req deviceTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.svc.RegisterDeviceToken(c.Request.Context(), id, req.Token); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"registered": true})
}
