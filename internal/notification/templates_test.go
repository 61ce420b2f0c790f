package notification

import (
	"strings"
	"testing"

	"salesops_backend/internal/scheduler"
)

func TestRenderAssignment(t *testing.T) {
	subject, body, err := RenderAssignment(scheduler.AssignmentEmailPayload{
		ConsultantName: "Ana",
		CampaignName:   "Prospecção Q3",
		LeadCount:      12,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(subject, "12") || !strings.Contains(subject, "Prospecção Q3") {
		t.Fatalf("subject missing counts or campaign: %q", subject)
	}
	if !strings.Contains(body, "Olá Ana") || !strings.Contains(body, "novo(s)") {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestRenderAssignmentRepescagem(t *testing.T) {
	subject, body, err := RenderAssignment(scheduler.AssignmentEmailPayload{
		ConsultantName: "Bruno",
		CampaignName:   "Base Fria",
		LeadCount:      3,
		Repescagem:     true,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(subject, "Repescagem") {
		t.Fatalf("repescagem subject missing marker: %q", subject)
	}
	if !strings.Contains(body, "repescagem") {
		t.Fatalf("repescagem body missing marker: %q", body)
	}
}
