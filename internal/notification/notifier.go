// Package notification turns distribution events into consultant emails.
// In the API process it subscribes to the event bus and hands the delivery to
// the worker via the queue; without a queue it sends inline.
package notification

import (
	"context"

	"salesops_backend/internal/events"
	"salesops_backend/internal/notification/email"
	"salesops_backend/internal/scheduler"
	"salesops_backend/platform/logger"
)

// EmailEnqueuer schedules an assignment email on the worker. Implemented by
// scheduler.Client; may be nil.
type EmailEnqueuer interface {
	EnqueueAssignmentEmail(ctx context.Context, payload scheduler.AssignmentEmailPayload) error
}

// Notifier listens for distribution events and notifies consultants.
type Notifier struct {
	enqueuer EmailEnqueuer
	sender   *email.Sender
	log      *logger.Logger
}

// New creates a notifier. enqueuer may be nil; the sender is then used
// directly.
func New(enqueuer EmailEnqueuer, sender *email.Sender, log *logger.Logger) *Notifier {
	return &Notifier{enqueuer: enqueuer, sender: sender, log: log}
}

// Register subscribes the notifier to the event bus.
func (n *Notifier) Register(bus events.Bus) {
	bus.Subscribe(events.LeadsDistributed{}.EventName(), events.HandlerFunc(n.onDistributed))
	bus.Subscribe(events.LeadsReassigned{}.EventName(), events.HandlerFunc(n.onReassigned))
}

func (n *Notifier) onDistributed(ctx context.Context, event events.Event) error {
	distributed, ok := event.(events.LeadsDistributed)
	if !ok {
		return nil
	}

	for _, allotment := range distributed.Allotments {
		if len(allotment.LeadIDs) == 0 {
			continue
		}
		n.deliver(ctx, scheduler.AssignmentEmailPayload{
			ConsultantName:  allotment.Name,
			ConsultantEmail: allotment.Email,
			CampaignName:    distributed.CampaignName,
			LeadCount:       len(allotment.LeadIDs),
		})
	}
	return nil
}

func (n *Notifier) onReassigned(ctx context.Context, event events.Event) error {
	reassigned, ok := event.(events.LeadsReassigned)
	if !ok {
		return nil
	}

	n.deliver(ctx, scheduler.AssignmentEmailPayload{
		ConsultantName:  reassigned.ToName,
		ConsultantEmail: reassigned.ToEmail,
		CampaignName:    reassigned.CampaignName,
		LeadCount:       len(reassigned.LeadIDs),
		Repescagem:      true,
	})
	return nil
}

func (n *Notifier) deliver(ctx context.Context, payload scheduler.AssignmentEmailPayload) {
	if n.enqueuer != nil {
		if err := n.enqueuer.EnqueueAssignmentEmail(ctx, payload); err != nil {
			n.log.Error("failed to enqueue assignment email",
				"consultant", payload.ConsultantEmail,
				"error", err.Error(),
			)
		}
		return
	}

	subject, body, err := RenderAssignment(payload)
	if err != nil {
		n.log.Error("failed to render assignment email", "error", err.Error())
		return
	}
	if err := n.sender.Send(ctx, payload.ConsultantEmail, payload.ConsultantName, subject, body); err != nil {
		n.log.Error("failed to send assignment email",
			"consultant", payload.ConsultantEmail,
			"error", err.Error(),
		)
	}
}
