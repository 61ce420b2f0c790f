package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CampaignSummary aggregates a campaign's lead pipeline.
type CampaignSummary struct {
	Total      int
	Estoque    int // unassigned leads waiting for distribution
	Atribuidos int
	Fechados   int
	Perdidos   int
}

func (r *Repository) CampaignSummary(ctx context.Context, campaignID uuid.UUID) (CampaignSummary, error) {
	var summary CampaignSummary
	err := r.pool.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE consultant_id IS NULL),
		       count(*) FILTER (WHERE consultant_id IS NOT NULL),
		       count(*) FILTER (WHERE status = 'FECHADO'),
		       count(*) FILTER (WHERE status = 'PERDIDO')
		FROM leads
		WHERE campaign_id = $1
	`, campaignID).Scan(&summary.Total, &summary.Estoque, &summary.Atribuidos, &summary.Fechados, &summary.Perdidos)
	return summary, err
}

// ConsultantLoad is one consultant's slice of a campaign, used by the
// distribution report and by repescagem decisions.
type ConsultantLoad struct {
	ConsultantID   uuid.UUID
	ConsultantName string
	OfficeID       *uuid.UUID
	OfficeName     *string
	Atribuidos     int
	Trabalhados    int // any status past NOVO
	Restantes      int // still NOVO
	Fechados       int
	Perdidos       int
	LastActivityAt *time.Time
}

func (r *Repository) ConsultantLoads(ctx context.Context, campaignID uuid.UUID) ([]ConsultantLoad, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.consultant_id, u.name, l.office_id, o.name,
		       count(*),
		       count(*) FILTER (WHERE l.status <> 'NOVO'),
		       count(*) FILTER (WHERE l.status = 'NOVO'),
		       count(*) FILTER (WHERE l.status = 'FECHADO'),
		       count(*) FILTER (WHERE l.status = 'PERDIDO'),
		       max(l.last_activity_at)
		FROM leads l
		JOIN users u ON u.id = l.consultant_id
		LEFT JOIN offices o ON o.id = l.office_id
		WHERE l.campaign_id = $1 AND l.consultant_id IS NOT NULL
		GROUP BY l.consultant_id, u.name, l.office_id, o.name
		ORDER BY u.name ASC
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loads := make([]ConsultantLoad, 0)
	for rows.Next() {
		var load ConsultantLoad
		if err := rows.Scan(
			&load.ConsultantID, &load.ConsultantName, &load.OfficeID, &load.OfficeName,
			&load.Atribuidos, &load.Trabalhados, &load.Restantes, &load.Fechados,
			&load.Perdidos, &load.LastActivityAt,
		); err != nil {
			return nil, err
		}
		loads = append(loads, load)
	}
	return loads, rows.Err()
}
