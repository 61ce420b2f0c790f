package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("user not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Credential is the minimal user projection needed to authenticate.
type Credential struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
	OfficeID     *uuid.UUID
	Active       bool
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (Credential, error) {
	var cred Credential
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, office_id, active
		FROM users WHERE lower(email) = lower($1)
	`, email).Scan(
		&cred.ID, &cred.Name, &cred.Email, &cred.PasswordHash, &cred.Role, &cred.OfficeID, &cred.Active,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credential{}, ErrNotFound
	}
	return cred, err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Credential, error) {
	var cred Credential
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, office_id, active
		FROM users WHERE id = $1
	`, id).Scan(
		&cred.ID, &cred.Name, &cred.Email, &cred.PasswordHash, &cred.Role, &cred.OfficeID, &cred.Active,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credential{}, ErrNotFound
	}
	return cred, err
}

func (r *Repository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET updated_at = $2 WHERE id = $1`, id, at)
	return err
}
