package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a campaign does not exist.
var ErrNotFound = errors.New("campaign not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Campaign is a lead campaign row.
type Campaign struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Active      bool
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
}

// Create inserts a campaign and links it to its target offices in one
// transaction.
func (r *Repository) Create(ctx context.Context, name string, description *string, createdBy uuid.UUID, officeIDs []uuid.UUID) (Campaign, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Campaign{}, err
	}
	defer tx.Rollback(ctx)

	var campaign Campaign
	err = tx.QueryRow(ctx, `
		INSERT INTO campaigns (name, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, active, created_by, created_at
	`, name, description, createdBy).Scan(
		&campaign.ID, &campaign.Name, &campaign.Description,
		&campaign.Active, &campaign.CreatedBy, &campaign.CreatedAt,
	)
	if err != nil {
		return Campaign{}, err
	}

	for _, officeID := range officeIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO campaign_offices (campaign_id, office_id) VALUES ($1, $2)
		`, campaign.ID, officeID); err != nil {
			return Campaign{}, err
		}
	}

	return campaign, tx.Commit(ctx)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Campaign, error) {
	var campaign Campaign
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description, active, created_by, created_at
		FROM campaigns WHERE id = $1
	`, id).Scan(
		&campaign.ID, &campaign.Name, &campaign.Description,
		&campaign.Active, &campaign.CreatedBy, &campaign.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Campaign{}, ErrNotFound
	}
	return campaign, err
}

func (r *Repository) List(ctx context.Context, onlyActive bool) ([]Campaign, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, active, created_by, created_at
		FROM campaigns
		WHERE (NOT $1::bool OR active = true)
		ORDER BY created_at DESC
	`, onlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := make([]Campaign, 0)
	for rows.Next() {
		var campaign Campaign
		if err := rows.Scan(
			&campaign.ID, &campaign.Name, &campaign.Description,
			&campaign.Active, &campaign.CreatedBy, &campaign.CreatedAt,
		); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}
	return campaigns, rows.Err()
}

// SetActive toggles a campaign. Distribution refuses inactive campaigns.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// OfficeIDs returns the offices a campaign targets. An empty result means the
// campaign is open to every office.
func (r *Repository) OfficeIDs(ctx context.Context, campaignID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT office_id FROM campaign_offices WHERE campaign_id = $1
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
