package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salesops_backend/internal/campaigns/service"
	"salesops_backend/internal/campaigns/transport"
	"salesops_backend/platform/httpkit"
	"salesops_backend/platform/validator"
)

// Handler handles campaign HTTP requests.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new campaigns handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create registers a campaign.
// POST /api/v1/campanhas
func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// List returns campaigns. Pass ?active=true to hide paused ones.
// GET /api/v1/campanhas
func (h *Handler) List(c *gin.Context) {
	onlyActive := c.Query("active") == "true"

	result, err := h.svc.List(c.Request.Context(), onlyActive)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get returns one campaign with its pipeline summary.
// GET /api/v1/campanhas/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return
	}

	result, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SetActive toggles a campaign on or off.
// PATCH /api/v1/campanhas/:id/ativa
func (h *Handler) SetActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return
	}

	var req transport.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	if err := h.svc.SetActive(c.Request.Context(), id, *req.Active); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
