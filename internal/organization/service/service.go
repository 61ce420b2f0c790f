// Package service implements the organization directory business logic:
// offices, users, and the hierarchy links consumed by the distribution core.
package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"salesops_backend/internal/organization/hierarchy"
	"salesops_backend/internal/organization/repository"
	"salesops_backend/internal/organization/transport"
	"salesops_backend/platform/apperr"
	"salesops_backend/platform/logger"
)

type Service struct {
	repo *repository.Repository
	log  *logger.Logger
}

func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// CreateOffice registers a new office.
func (s *Service) CreateOffice(ctx context.Context, req transport.CreateOfficeRequest) (transport.OfficeResponse, error) {
	office, err := s.repo.CreateOffice(ctx, repository.CreateOfficeParams{
		Name:              req.Name,
		OwnerID:           req.OwnerID,
		BusinessManagerID: req.BusinessManagerID,
		SeniorManagerID:   req.SeniorManagerID,
	})
	if err != nil {
		return transport.OfficeResponse{}, apperr.Wrap(apperr.KindInternal, "failed to create office", err)
	}

	s.log.Info("office created", "id", office.ID, "name", office.Name)
	return toOfficeResponse(office), nil
}

// ListOffices returns every office, alphabetically.
func (s *Service) ListOffices(ctx context.Context) (transport.OfficeListResponse, error) {
	offices, err := s.repo.ListOffices(ctx)
	if err != nil {
		return transport.OfficeListResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list offices", err)
	}

	items := make([]transport.OfficeResponse, 0, len(offices))
	for _, office := range offices {
		items = append(items, toOfficeResponse(office))
	}
	return transport.OfficeListResponse{Items: items, Total: len(items)}, nil
}

// CreateUser registers a user. Consultants and owners must be office-bound;
// consultants additionally need an owner.
func (s *Service) CreateUser(ctx context.Context, req transport.CreateUserRequest) (transport.UserResponse, error) {
	role := hierarchy.Role(req.Role)
	if !role.Valid() {
		return transport.UserResponse{}, apperr.Validation("unknown role")
	}

	if role == hierarchy.RoleConsultant || role == hierarchy.RoleOwner {
		if req.OfficeID == nil {
			return transport.UserResponse{}, apperr.Validation("office is required for this role")
		}
		if _, err := s.repo.GetOffice(ctx, *req.OfficeID); err != nil {
			return transport.UserResponse{}, apperr.NotFound("office not found")
		}
	}
	if role == hierarchy.RoleConsultant && req.OwnerID == nil {
		return transport.UserResponse{}, apperr.Validation("owner is required for consultants")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return transport.UserResponse{}, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	user, err := s.repo.CreateUser(ctx, repository.CreateUserParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         string(role),
		OfficeID:     req.OfficeID,
		OwnerID:      req.OwnerID,
	})
	if err != nil {
		return transport.UserResponse{}, apperr.Wrap(apperr.KindInternal, "failed to create user", err)
	}

	s.log.Info("user created", "id", user.ID, "role", user.Role)
	return toUserResponse(user), nil
}

// ListUsers returns users filtered by role and office.
func (s *Service) ListUsers(ctx context.Context, req transport.ListUsersRequest) (transport.UserListResponse, error) {
	params := repository.ListUsersParams{}
	if req.Role != "" {
		role := req.Role
		params.Role = &role
	}
	if req.OfficeID != "" {
		officeID, err := uuid.Parse(req.OfficeID)
		if err != nil {
			return transport.UserListResponse{}, apperr.Validation("invalid office id")
		}
		params.OfficeID = &officeID
	}

	users, err := s.repo.ListUsers(ctx, params)
	if err != nil {
		return transport.UserListResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list users", err)
	}

	items := make([]transport.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, toUserResponse(user))
	}
	return transport.UserListResponse{Items: items, Total: len(items)}, nil
}

// =============================================================================
// Directory reads used by the distribution core
// =============================================================================

// Consultant is the directory view of a distribution target.
type Consultant struct {
	ID       uuid.UUID
	Name     string
	Email    string
	OfficeID *uuid.UUID
}

// ConsultantsByIDs resolves the requested consultant ids to active consultant
// records. Ids that do not resolve (wrong role, inactive, unknown) are simply
// absent from the result; callers decide whether that is an error.
func (s *Service) ConsultantsByIDs(ctx context.Context, ids []uuid.UUID) ([]Consultant, error) {
	users, err := s.repo.ListConsultantsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	consultants := make([]Consultant, 0, len(users))
	for _, user := range users {
		consultants = append(consultants, Consultant{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			OfficeID: user.OfficeID,
		})
	}
	return consultants, nil
}

// OfficeScopeFor resolves the set of office ids an actor controls, per role.
// Unrestricted roles return nil, meaning "every office".
func (s *Service) OfficeScopeFor(ctx context.Context, actorID uuid.UUID, role hierarchy.Role) ([]uuid.UUID, error) {
	switch {
	case role.Unrestricted():
		return nil, nil
	case role == hierarchy.RoleBusinessManager:
		return s.repo.ListOfficeIDsManagedBy(ctx, actorID)
	case role == hierarchy.RoleOwner:
		return s.repo.ListOfficeIDsOwnedBy(ctx, actorID)
	default:
		return []uuid.UUID{}, nil
	}
}

// GetUser exposes a single user read for other modules.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (repository.User, error) {
	return s.repo.GetUser(ctx, id)
}

func toOfficeResponse(office repository.Office) transport.OfficeResponse {
	return transport.OfficeResponse{
		ID:                office.ID,
		Name:              office.Name,
		OwnerID:           office.OwnerID,
		BusinessManagerID: office.BusinessManagerID,
		SeniorManagerID:   office.SeniorManagerID,
		CreatedAt:         office.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toUserResponse(user repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		OfficeID: user.OfficeID,
		OwnerID:  user.OwnerID,
		Active:   user.Active,
	}
}
