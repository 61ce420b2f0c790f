// Package service implements authentication: credential verification and JWT
// issuance with hierarchy claims.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"salesops_backend/internal/auth/repository"
	"salesops_backend/internal/auth/transport"
	"salesops_backend/platform/apperr"
	"salesops_backend/platform/config"
	"salesops_backend/platform/logger"
)

const msgInvalidCredentials = "invalid credentials"

type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

func New(repo *repository.Repository, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Login verifies the credentials and issues an access token carrying the
// actor's role and office. Failures are indistinguishable to the caller so
// account existence is not leaked.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.LoginResponse, error) {
	cred, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.AuthEvent("login", req.Email, false, "unknown email")
			return transport.LoginResponse{}, apperr.Unauthorized(msgInvalidCredentials)
		}
		return transport.LoginResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load credentials", err)
	}

	if !cred.Active {
		s.log.AuthEvent("login", req.Email, false, "inactive account")
		return transport.LoginResponse{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)) != nil {
		s.log.AuthEvent("login", req.Email, false, "wrong password")
		return transport.LoginResponse{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	token, expiresIn, err := s.issueAccessToken(cred)
	if err != nil {
		return transport.LoginResponse{}, apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}

	_ = s.repo.TouchLastLogin(ctx, cred.ID, time.Now())
	s.log.AuthEvent("login", req.Email, true, "")

	return transport.LoginResponse{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		User: transport.MeResponse{
			ID:       cred.ID,
			Name:     cred.Name,
			Email:    cred.Email,
			Role:     cred.Role,
			OfficeID: cred.OfficeID,
		},
	}, nil
}

// Me returns the profile for an authenticated user id.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (transport.MeResponse, error) {
	cred, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.MeResponse{}, apperr.Unauthorized("unknown user")
		}
		return transport.MeResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load profile", err)
	}

	return transport.MeResponse{
		ID:       cred.ID,
		Name:     cred.Name,
		Email:    cred.Email,
		Role:     cred.Role,
		OfficeID: cred.OfficeID,
	}, nil
}

func (s *Service) issueAccessToken(cred repository.Credential) (string, int64, error) {
	ttl := s.cfg.GetAccessTokenTTL()
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":  cred.ID.String(),
		"role": cred.Role,
		"type": "access",
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	if cred.OfficeID != nil {
		claims["office_id"] = cred.OfficeID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
	if err != nil {
		return "", 0, err
	}

	return signed, int64(ttl.Seconds()), nil
}
