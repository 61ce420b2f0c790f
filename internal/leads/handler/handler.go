package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salesops_backend/internal/leads/service"
	"salesops_backend/internal/leads/transport"
	"salesops_backend/platform/httpkit"
	"salesops_backend/platform/validator"
)

// Handler handles lead HTTP requests.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Import bulk-loads leads into a campaign.
// POST /api/v1/campanhas/:id/leads/importar
func (h *Handler) Import(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return
	}

	var req transport.ImportLeadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	result, err := h.svc.Import(c.Request.Context(), campaignID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// List returns a campaign's leads, scoped to the caller.
// GET /api/v1/campanhas/:id/leads
func (h *Handler) List(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	result, err := h.svc.List(c.Request.Context(), campaignID, identity, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get returns a single lead.
// GET /api/v1/leads/:id
func (h *Handler) Get(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), leadID, identity)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RecordActivity registers a tratativa on a lead.
// POST /api/v1/leads/:id/tratativas
func (h *Handler) RecordActivity(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.RecordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	if err := h.svc.RecordActivity(c.Request.Context(), leadID, identity, req); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// History returns a lead's ownership audit trail.
// GET /api/v1/leads/:id/historico
func (h *Handler) History(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.History(c.Request.Context(), leadID, identity)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
