package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salesops_backend/internal/auth/service"
	"salesops_backend/internal/auth/transport"
	"salesops_backend/platform/httpkit"
	"salesops_backend/platform/validator"
)

// Handler handles authentication HTTP requests.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new auth handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Login authenticates a user and returns an access token.
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Me returns the authenticated user's profile.
// GET /api/v1/me
func (h *Handler) Me(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.Me(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
