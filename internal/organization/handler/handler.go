package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salesops_backend/internal/organization/service"
	"salesops_backend/internal/organization/transport"
	"salesops_backend/platform/httpkit"
	"salesops_backend/platform/validator"
)

// Handler handles HTTP requests for the organization directory.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new organization handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CreateOffice registers a new office.
// POST /api/v1/admin/escritorios
func (h *Handler) CreateOffice(c *gin.Context) {
	var req transport.CreateOfficeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateOffice(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// ListOffices returns every office.
// GET /api/v1/escritorios
func (h *Handler) ListOffices(c *gin.Context) {
	result, err := h.svc.ListOffices(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateUser registers a user in the hierarchy.
// POST /api/v1/admin/usuarios
func (h *Handler) CreateUser(c *gin.Context) {
	var req transport.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateUser(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// ListUsers returns users filtered by role and office.
// GET /api/v1/usuarios?role=&officeId=
func (h *Handler) ListUsers(c *gin.Context) {
	var req transport.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.ListUsers(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
