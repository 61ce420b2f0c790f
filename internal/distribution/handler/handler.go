package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salesops_backend/internal/distribution/service"
	"salesops_backend/internal/distribution/transport"
	"salesops_backend/platform/httpkit"
	"salesops_backend/platform/validator"
)

// Handler handles distribution HTTP requests.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new distribution handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Distribute runs a distribution on a campaign.
// POST /api/v1/campanhas/:id/distribuir
func (h *Handler) Distribute(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.DistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	result, err := h.svc.Distribute(c.Request.Context(), campaignID, identity, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Reassign runs a repescagem between two consultants.
// POST /api/v1/repescagem
func (h *Handler) Reassign(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	result, err := h.svc.Reassign(c.Request.Context(), identity, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Report returns the per-consultant distribution report of a campaign.
// GET /api/v1/campanhas/:id/distribuicao
func (h *Handler) Report(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return
	}

	result, err := h.svc.Report(c.Request.Context(), campaignID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
