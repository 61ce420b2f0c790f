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
	ErrOfficeNotFound = errors.New("office not found")
	ErrUserNotFound   = errors.New("user not found")
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Office struct {
	ID                uuid.UUID
	Name              string
	OwnerID           *uuid.UUID
	BusinessManagerID *uuid.UUID
	SeniorManagerID   *uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
	OfficeID     *uuid.UUID
	OwnerID      *uuid.UUID
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateOfficeParams struct {
	Name              string
	OwnerID           *uuid.UUID
	BusinessManagerID *uuid.UUID
	SeniorManagerID   *uuid.UUID
}

func (r *Repository) CreateOffice(ctx context.Context, params CreateOfficeParams) (Office, error) {
	var office Office
	err := r.pool.QueryRow(ctx, `
		INSERT INTO offices (name, owner_id, business_manager_id, senior_manager_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, owner_id, business_manager_id, senior_manager_id, created_at, updated_at
	`, params.Name, params.OwnerID, params.BusinessManagerID, params.SeniorManagerID).Scan(
		&office.ID, &office.Name, &office.OwnerID, &office.BusinessManagerID, &office.SeniorManagerID,
		&office.CreatedAt, &office.UpdatedAt,
	)
	if err != nil {
		return Office{}, err
	}
	return office, nil
}

func (r *Repository) GetOffice(ctx context.Context, id uuid.UUID) (Office, error) {
	var office Office
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, owner_id, business_manager_id, senior_manager_id, created_at, updated_at
		FROM offices WHERE id = $1
	`, id).Scan(
		&office.ID, &office.Name, &office.OwnerID, &office.BusinessManagerID, &office.SeniorManagerID,
		&office.CreatedAt, &office.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Office{}, ErrOfficeNotFound
	}
	return office, err
}

func (r *Repository) ListOffices(ctx context.Context) ([]Office, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, owner_id, business_manager_id, senior_manager_id, created_at, updated_at
		FROM offices ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offices := make([]Office, 0)
	for rows.Next() {
		var office Office
		if err := rows.Scan(
			&office.ID, &office.Name, &office.OwnerID, &office.BusinessManagerID, &office.SeniorManagerID,
			&office.CreatedAt, &office.UpdatedAt,
		); err != nil {
			return nil, err
		}
		offices = append(offices, office)
	}
	return offices, rows.Err()
}

type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	Role         string
	OfficeID     *uuid.UUID
	OwnerID      *uuid.UUID
}

func (r *Repository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role, office_id, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, email, password_hash, role, office_id, owner_id, active, created_at, updated_at
	`, params.Name, params.Email, params.PasswordHash, params.Role, params.OfficeID, params.OwnerID).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.OfficeID, &user.OwnerID, &user.Active, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, office_id, owner_id, active, created_at, updated_at
		FROM users WHERE id = $1
	`, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.OfficeID, &user.OwnerID, &user.Active, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return user, err
}

type ListUsersParams struct {
	Role     *string
	OfficeID *uuid.UUID
}

func (r *Repository) ListUsers(ctx context.Context, params ListUsersParams) ([]User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, password_hash, role, office_id, owner_id, active, created_at, updated_at
		FROM users
		WHERE ($1::text IS NULL OR role = $1)
		  AND ($2::uuid IS NULL OR office_id = $2)
		ORDER BY name ASC
	`, params.Role, params.OfficeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

// listConsultantsByIDsQuery restricts lookups to active consultants so a
// distribution request can never target managers or deactivated accounts.
const listConsultantsByIDsQuery = `
	SELECT id, name, email, password_hash, role, office_id, owner_id, active, created_at, updated_at
	FROM users
	WHERE id = ANY($1) AND role = 'CONSULTOR' AND active = true
`

func (r *Repository) ListConsultantsByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error) {
	rows, err := r.pool.Query(ctx, listConsultantsByIDsQuery, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

// listOfficesManagedByQuery resolves a business manager's scope: every office
// whose business_manager_id points at them.
const listOfficesManagedByQuery = `
	SELECT id FROM offices WHERE business_manager_id = $1
`

func (r *Repository) ListOfficeIDsManagedBy(ctx context.Context, managerID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, listOfficesManagedByQuery, managerID)
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

// ListOfficeIDsOwnedBy resolves an owner's scope from the offices table rather
// than the owner's own office_id column, so ownership stays authoritative.
const listOfficesOwnedByQuery = `
	SELECT id FROM offices WHERE owner_id = $1
`

func (r *Repository) ListOfficeIDsOwnedBy(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, listOfficesOwnedByQuery, ownerID)
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

func scanUsers(rows pgx.Rows) ([]User, error) {
	users := make([]User, 0)
	for rows.Next() {
		var user User
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
			&user.OfficeID, &user.OwnerID, &user.Active, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
