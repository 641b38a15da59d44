package service

import (
	"context"
	"errors"
	"strings"

	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/model"
	"github.com/parmenasoares/track-and-work/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleService implements role administration: per-email grant/revoke for
// admins, the roles audit listing, and the super-admin batch assignment.
type RoleService interface {
	// SetRoleByEmail replaces the target user's role rows with the given
	// role. The caller may never change their own role.
	SetRoleByEmail(ctx context.Context, callerID uuid.UUID, req dto.SetRoleRequest) error
	RemoveRoleByEmail(ctx context.Context, callerID uuid.UUID, req dto.RemoveRoleRequest) error
	ListAssignments(ctx context.Context) ([]dto.RoleAssignmentResponse, error)
	// AssignSuperAdmins resolves every email first (failing with the full
	// not-found list), then replaces each user's roles with SUPER_ADMIN.
	AssignSuperAdmins(ctx context.Context, callerID uuid.UUID, req dto.SuperAdminAssignRequest) (*dto.SuperAdminAssignResponse, []string, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
}

type roleService struct {
	users repository.UserRepository
	roles repository.RoleRepository
}

func NewRoleService(users repository.UserRepository, roles repository.RoleRepository) RoleService {
	return &roleService{users: users, roles: roles}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *roleService) resolveTarget(ctx context.Context, callerID uuid.UUID, email string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}
	target, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if target.ID == callerID {
		return nil, ErrCannotChangeSelf
	}
	return target, nil
}

func (s *roleService) SetRoleByEmail(ctx context.Context, callerID uuid.UUID, req dto.SetRoleRequest) error {
	if !model.ValidRole(req.Role) {
		return errors.New("invalid role")
	}
	target, err := s.resolveTarget(ctx, callerID, req.Email)
	if err != nil {
		return err
	}
	return s.roles.ReplaceForUser(ctx, target.ID, req.Role, callerID)
}

func (s *roleService) RemoveRoleByEmail(ctx context.Context, callerID uuid.UUID, req dto.RemoveRoleRequest) error {
	target, err := s.resolveTarget(ctx, callerID, req.Email)
	if err != nil {
		return err
	}
	return s.roles.DeleteForUser(ctx, target.ID)
}

func (s *roleService) ListAssignments(ctx context.Context) ([]dto.RoleAssignmentResponse, error) {
	rows, err := s.roles.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleAssignmentResponse, 0, len(rows))
	for _, r := range rows {
		entry := dto.RoleAssignmentResponse{
			ID:        r.ID.String(),
			UserID:    r.UserID.String(),
			Role:      r.Role,
			CreatedAt: r.CreatedAt,
		}
		if r.User != nil {
			entry.UserEmail = r.User.Email
		}
		if r.CreatedBy != nil {
			id := r.CreatedBy.String()
			entry.GrantedBy = &id
		}
		if r.Granter != nil {
			email := r.Granter.Email
			entry.GrantedEmail = &email
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *roleService) AssignSuperAdmins(ctx context.Context, callerID uuid.UUID, req dto.SuperAdminAssignRequest) (*dto.SuperAdminAssignResponse, []string, error) {
	// Normalize + dedupe, preserving request order.
	seen := make(map[string]bool)
	emails := make([]string, 0, len(req.Emails))
	for _, e := range req.Emails {
		e = normalizeEmail(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		emails = append(emails, e)
	}
	if len(emails) == 0 {
		return nil, nil, ErrInvalidEmail
	}

	// Resolve all targets first; an unknown email fails the whole batch with
	// the complete not-found list.
	targets := make(map[string]*model.User, len(emails))
	var notFound []string
	for _, e := range emails {
		u, err := s.users.FindByEmail(ctx, e)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				notFound = append(notFound, e)
				continue
			}
			return nil, nil, err
		}
		targets[e] = u
	}
	if len(notFound) > 0 {
		return nil, notFound, ErrUserNotFound
	}

	resp := &dto.SuperAdminAssignResponse{Results: make([]dto.AssignResultEntry, 0, len(emails))}
	for _, e := range emails {
		target := targets[e]
		entry := dto.AssignResultEntry{Email: e, UserID: target.ID.String(), Status: "ok"}
		if err := s.roles.ReplaceForUser(ctx, target.ID, model.RoleSuperAdmin, callerID); err != nil {
			entry.Status = "error"
			entry.Error = "role assignment failed"
			resp.Err++
		} else {
			resp.OK++
		}
		resp.Results = append(resp.Results, entry)
	}
	return resp, nil, nil
}

func (s *roleService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.ListWithRoles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		u := &users[i]
		roles := make([]string, 0, len(u.Roles))
		for _, r := range u.Roles {
			roles = append(roles, r.Role)
		}
		out = append(out, mapUser(u, roles))
	}
	return out, nil
}
