package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when a lead does not exist.
	ErrNotFound = errors.New("lead not found")
	// ErrNotClaimed is returned when a conditional assignment matched no row,
	// meaning a concurrent request took the lead first or the expected owner
	// changed underneath us.
	ErrNotClaimed = errors.New("lead not claimed")
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Lead is the full lead row.
type Lead struct {
	ID                  uuid.UUID
	CampaignID          uuid.UUID
	OfficeID            *uuid.UUID
	ConsultantID        *uuid.UUID
	Status              string
	CompanyName         string
	CNPJ                *string
	Phone1              *string
	Phone2              *string
	Phone3              *string
	Revenue             *string
	City                *string
	State               *string
	LegalNature         *string
	OpenedOn            *time.Time
	PreviousConsultants []uuid.UUID
	CreatedAt           time.Time
	LastActivityAt      *time.Time
	UpdatedAt           time.Time
}

const leadColumns = `
	id, campaign_id, office_id, consultant_id, status, company_name, cnpj,
	phone1, phone2, phone3, revenue, city, state, legal_nature, opened_on,
	previous_consultants, created_at, last_activity_at, updated_at
`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.CampaignID, &lead.OfficeID, &lead.ConsultantID, &lead.Status,
		&lead.CompanyName, &lead.CNPJ, &lead.Phone1, &lead.Phone2, &lead.Phone3,
		&lead.Revenue, &lead.City, &lead.State, &lead.LegalNature, &lead.OpenedOn,
		&lead.PreviousConsultants, &lead.CreatedAt, &lead.LastActivityAt, &lead.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
}

// =============================================================================
// Import / listing
// =============================================================================

// ImportRow is one pre-parsed lead to insert into a campaign. File parsing is
// out of scope; callers supply structured rows.
type ImportRow struct {
	CompanyName string
	CNPJ        *string
	Phone1      *string
	Phone2      *string
	Phone3      *string
	Revenue     *string
	OfficeID    *uuid.UUID
}

// ImportLeads bulk-inserts leads into a campaign using the binary copy
// protocol.
func (r *Repository) ImportLeads(ctx context.Context, campaignID uuid.UUID, rows []ImportRow) (int64, error) {
	source := pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
		row := rows[i]
		return []any{campaignID, row.OfficeID, row.CompanyName, row.CNPJ, row.Phone1, row.Phone2, row.Phone3, row.Revenue}, nil
	})

	return r.pool.CopyFrom(ctx,
		pgx.Identifier{"leads"},
		[]string{"campaign_id", "office_id", "company_name", "cnpj", "phone1", "phone2", "phone3", "revenue"},
		source,
	)
}

// ListParams filters campaign lead listings.
type ListParams struct {
	CampaignID   uuid.UUID
	Status       *string
	ConsultantID *uuid.UUID
	Limit        int
	Offset       int
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE campaign_id = $1
		  AND ($2::text IS NULL OR status = $2)
		  AND ($3::uuid IS NULL OR consultant_id = $3)
		ORDER BY created_at ASC
		LIMIT $4 OFFSET $5
	`, params.CampaignID, params.Status, params.ConsultantID, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// =============================================================================
// Distribution primitives
// =============================================================================

// Candidate is the projection the eligibility filter works on.
type Candidate struct {
	ID           uuid.UUID
	ConsultantID *uuid.UUID
	OfficeID     *uuid.UUID
	Status       string
	Phone1       *string
	Phone2       *string
	Phone3       *string
	Revenue      *string
	CreatedAt    time.Time
}

// SelectParams narrows the candidate pool inside the store. Phone and revenue
// predicates stay in application code; the query only applies the constraints
// it can express cheaply.
type SelectParams struct {
	CampaignID      uuid.UUID
	Statuses        []string    // nil = any status
	ExcludeStatuses []string    // nil = exclude none
	OnlyUnassigned  bool        // consultant_id IS NULL
	OnlyAssigned    bool        // consultant_id IS NOT NULL (repescagem pool)
	OwnedBy         *uuid.UUID  // restrict to a current owner (repescagem)
	OfficeIDs       []uuid.UUID // nil = any office
	Limit           int
}

// selectCandidatesQuery orders oldest-first so long-waiting leads are
// distributed before fresh ones.
const selectCandidatesQuery = `
	SELECT id, consultant_id, office_id, status, phone1, phone2, phone3, revenue, created_at
	FROM leads
	WHERE campaign_id = $1
	  AND ($2::text[] IS NULL OR status = ANY($2))
	  AND ($3::text[] IS NULL OR NOT (status = ANY($3)))
	  AND (NOT $4::bool OR consultant_id IS NULL)
	  AND (NOT $5::bool OR consultant_id IS NOT NULL)
	  AND ($6::uuid IS NULL OR consultant_id = $6)
	  AND ($7::uuid[] IS NULL OR office_id = ANY($7))
	ORDER BY created_at ASC
	LIMIT $8
`

func (r *Repository) SelectCandidates(ctx context.Context, params SelectParams) ([]Candidate, error) {
	rows, err := r.pool.Query(ctx, selectCandidatesQuery,
		params.CampaignID, params.Statuses, params.ExcludeStatuses,
		params.OnlyUnassigned, params.OnlyAssigned, params.OwnedBy, params.OfficeIDs, params.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := make([]Candidate, 0)
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(
			&c.ID, &c.ConsultantID, &c.OfficeID, &c.Status,
			&c.Phone1, &c.Phone2, &c.Phone3, &c.Revenue, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// claimLeadQuery is the single conditional update that makes assignment safe
// under concurrency: the row is only taken when the owner we saw at selection
// time is still the owner. A previous owner is appended to the history array
// in the same statement, so ownership history can never miss an entry.
const claimLeadQuery = `
	UPDATE leads
	SET consultant_id = $2,
	    previous_consultants = CASE
	        WHEN consultant_id IS NOT NULL AND consultant_id <> $2
	        THEN array_append(previous_consultants, consultant_id)
	        ELSE previous_consultants
	    END,
	    last_activity_at = now(),
	    updated_at = now()
	WHERE id = $1
	  AND consultant_id IS NOT DISTINCT FROM $3
	RETURNING id
`

// ClaimForConsultant assigns a lead to a consultant iff the current owner is
// still expectedOwner (nil = still unassigned). Returns ErrNotClaimed when a
// concurrent request won the race.
func (r *Repository) ClaimForConsultant(ctx context.Context, leadID, consultantID uuid.UUID, expectedOwner *uuid.UUID) error {
	var claimed uuid.UUID
	err := r.pool.QueryRow(ctx, claimLeadQuery, leadID, consultantID, expectedOwner).Scan(&claimed)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotClaimed
	}
	return err
}

// =============================================================================
// Audit history
// =============================================================================

// HistoryEntry is an immutable audit record of a lead changing hands.
type HistoryEntry struct {
	ID         uuid.UUID
	LeadID     uuid.UUID
	Action     string
	FromUserID *uuid.UUID
	ToUserID   *uuid.UUID
	ActorID    uuid.UUID
	Note       *string
	CreatedAt  time.Time
}

// InsertHistoryParams describes one audit append.
type InsertHistoryParams struct {
	LeadID     uuid.UUID
	Action     string
	FromUserID *uuid.UUID
	ToUserID   *uuid.UUID
	ActorID    uuid.UUID
	Note       *string
}

func (r *Repository) InsertHistory(ctx context.Context, params InsertHistoryParams) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lead_history (lead_id, action, from_user_id, to_user_id, actor_id, note)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, params.LeadID, params.Action, params.FromUserID, params.ToUserID, params.ActorID, params.Note)
	return err
}

func (r *Repository) ListHistory(ctx context.Context, leadID uuid.UUID) ([]HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, action, from_user_id, to_user_id, actor_id, note, created_at
		FROM lead_history
		WHERE lead_id = $1
		ORDER BY created_at ASC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0)
	for rows.Next() {
		var entry HistoryEntry
		if err := rows.Scan(
			&entry.ID, &entry.LeadID, &entry.Action, &entry.FromUserID,
			&entry.ToUserID, &entry.ActorID, &entry.Note, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// =============================================================================
// Tratativa (activity recording)
// =============================================================================

// RecordActivityParams captures a consultant working a lead.
type RecordActivityParams struct {
	LeadID    uuid.UUID
	UserID    uuid.UUID
	Kind      string
	Note      *string
	NewStatus *string
}

// RecordActivity appends an activity and, when a status change accompanies it,
// moves the lead in the same transaction.
func (r *Repository) RecordActivity(ctx context.Context, params RecordActivityParams) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO lead_activities (lead_id, user_id, kind, note)
		VALUES ($1, $2, $3, $4)
	`, params.LeadID, params.UserID, params.Kind, params.Note); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE leads
		SET status = COALESCE($2, status),
		    last_activity_at = now(),
		    updated_at = now()
		WHERE id = $1
	`, params.LeadID, params.NewStatus); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// =============================================================================
// Enrichment writes
// =============================================================================

// EnrichmentParams carries registry fields merged into a lead.
type EnrichmentParams struct {
	LeadID      uuid.UUID
	CompanyName *string
	City        *string
	State       *string
	LegalNature *string
	OpenedOn    *time.Time
	Revenue     *string
}

// ApplyEnrichment merges registry data without clobbering fields the registry
// did not return.
func (r *Repository) ApplyEnrichment(ctx context.Context, params EnrichmentParams) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads
		SET company_name = COALESCE($2, company_name),
		    city = COALESCE($3, city),
		    state = COALESCE($4, state),
		    legal_nature = COALESCE($5, legal_nature),
		    opened_on = COALESCE($6, opened_on),
		    revenue = COALESCE(revenue, $7),
		    updated_at = now()
		WHERE id = $1
	`, params.LeadID, params.CompanyName, params.City, params.State, params.LegalNature, params.OpenedOn, params.Revenue)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCNPJsByCampaign returns (lead id, cnpj) pairs for backfill enrichment.
func (r *Repository) ListCNPJsByCampaign(ctx context.Context, campaignID uuid.UUID) (map[uuid.UUID]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, cnpj FROM leads
		WHERE campaign_id = $1 AND cnpj IS NOT NULL AND cnpj <> ''
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uuid.UUID]string)
	for rows.Next() {
		var id uuid.UUID
		var cnpj string
		if err := rows.Scan(&id, &cnpj); err != nil {
			return nil, err
		}
		result[id] = cnpj
	}
	return result, rows.Err()
}
