package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salesops_backend/internal/enrichment/service"
	"salesops_backend/platform/httpkit"
)

// BackfillEnqueuer schedules a campaign backfill on the worker. Implemented
// by scheduler.Client; may be nil when redis is not configured.
type BackfillEnqueuer interface {
	EnqueueCampaignBackfill(ctx context.Context, campaignID uuid.UUID) error
}

// Handler handles enrichment HTTP requests.
type Handler struct {
	svc      *service.Service
	enqueuer BackfillEnqueuer
}

// New creates a new enrichment handler.
func New(svc *service.Service, enqueuer BackfillEnqueuer) *Handler {
	return &Handler{svc: svc, enqueuer: enqueuer}
}

// Enrich merges registry data into one lead.
// POST /api/v1/leads/:id/enriquecer
func (h *Handler) Enrich(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	result, err := h.svc.Enrich(c.Request.Context(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Backfill enriches every lead of a campaign. With a queue configured the
// work runs on the worker and the request returns 202; without one it runs
// inline.
// POST /api/v1/campanhas/:id/enriquecer
func (h *Handler) Backfill(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return
	}

	if h.enqueuer != nil {
		if err := h.enqueuer.EnqueueCampaignBackfill(c.Request.Context(), campaignID); err != nil {
			httpkit.Error(c, http.StatusInternalServerError, "failed to schedule backfill", nil)
			return
		}
		httpkit.JSON(c, http.StatusAccepted, gin.H{"scheduled": true})
		return
	}

	enriched, err := h.svc.BackfillCampaign(c.Request.Context(), campaignID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"enriched": enriched})
}
