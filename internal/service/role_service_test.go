package service

import (
	"context"
	"testing"

	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, users *memUsers, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, PasswordHash: "x"}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestSetRoleByEmail(t *testing.T) {
	users := newMemUsers()
	roles := &memRoles{}
	svc := NewRoleService(users, roles)
	ctx := context.Background()

	admin := seedAccount(t, users, "admin@example.com")
	target := seedAccount(t, users, "op@example.com")

	err := svc.SetRoleByEmail(ctx, admin.ID, dto.SetRoleRequest{Email: " OP@example.com ", Role: model.RoleCoordenador})
	require.NoError(t, err)

	rows, err := roles.ListByUser(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.RoleCoordenador, rows[0].Role)
	require.NotNil(t, rows[0].CreatedBy)
	assert.Equal(t, admin.ID, *rows[0].CreatedBy)

	// Setting again replaces rather than accumulates.
	require.NoError(t, svc.SetRoleByEmail(ctx, admin.ID, dto.SetRoleRequest{Email: "op@example.com", Role: model.RoleAdmin}))
	rows, err = roles.ListByUser(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.RoleAdmin, rows[0].Role)
}

func TestSetRoleByEmailGuards(t *testing.T) {
	users := newMemUsers()
	svc := NewRoleService(users, &memRoles{})
	ctx := context.Background()

	admin := seedAccount(t, users, "admin@example.com")

	err := svc.SetRoleByEmail(ctx, admin.ID, dto.SetRoleRequest{Email: "admin@example.com", Role: model.RoleOperador})
	assert.ErrorIs(t, err, ErrCannotChangeSelf)

	err = svc.SetRoleByEmail(ctx, admin.ID, dto.SetRoleRequest{Email: "ghost@example.com", Role: model.RoleOperador})
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = svc.SetRoleByEmail(ctx, admin.ID, dto.SetRoleRequest{Email: "", Role: model.RoleOperador})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	err = svc.SetRoleByEmail(ctx, admin.ID, dto.SetRoleRequest{Email: "op@example.com", Role: "OWNER"})
	assert.Error(t, err)
}

func TestRemoveRoleByEmail(t *testing.T) {
	users := newMemUsers()
	roles := &memRoles{}
	svc := NewRoleService(users, roles)
	ctx := context.Background()

	admin := seedAccount(t, users, "admin@example.com")
	target := seedAccount(t, users, "op@example.com")
	require.NoError(t, roles.ReplaceForUser(ctx, target.ID, model.RoleOperador, admin.ID))

	require.NoError(t, svc.RemoveRoleByEmail(ctx, admin.ID, dto.RemoveRoleRequest{Email: "op@example.com"}))
	rows, err := roles.ListByUser(ctx, target.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	err = svc.RemoveRoleByEmail(ctx, admin.ID, dto.RemoveRoleRequest{Email: "admin@example.com"})
	assert.ErrorIs(t, err, ErrCannotChangeSelf)
}

func TestAssignSuperAdminsFailsBatchOnUnknownEmails(t *testing.T) {
	users := newMemUsers()
	roles := &memRoles{}
	svc := NewRoleService(users, roles)
	ctx := context.Background()

	caller := uuid.New()
	known := seedAccount(t, users, "known@example.com")

	_, notFound, err := svc.AssignSuperAdmins(ctx, caller, dto.SuperAdminAssignRequest{
		Emails: []string{"known@example.com", "ghost1@example.com", "ghost2@example.com"},
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, []string{"ghost1@example.com", "ghost2@example.com"}, notFound)

	// Nothing was assigned.
	rows, err := roles.ListByUser(ctx, known.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAssignSuperAdmins(t *testing.T) {
	users := newMemUsers()
	roles := &memRoles{}
	svc := NewRoleService(users, roles)
	ctx := context.Background()

	caller := uuid.New()
	a := seedAccount(t, users, "a@example.com")
	b := seedAccount(t, users, "b@example.com")

	// Duplicates and casing are normalized away.
	resp, notFound, err := svc.AssignSuperAdmins(ctx, caller, dto.SuperAdminAssignRequest{
		Emails: []string{"A@example.com", "b@example.com", "a@example.com"},
	})
	require.NoError(t, err)
	assert.Empty(t, notFound)
	assert.Equal(t, 2, resp.OK)
	assert.Equal(t, 0, resp.Err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "a@example.com", resp.Results[0].Email)
	assert.Equal(t, "ok", resp.Results[0].Status)

	for _, u := range []*model.User{a, b} {
		rows, err := roles.ListByUser(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, model.RoleSuperAdmin, rows[0].Role)
	}

	_, _, err = svc.AssignSuperAdmins(ctx, caller, dto.SuperAdminAssignRequest{Emails: []string{"  "}})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestListUsers(t *testing.T) {
	users := newMemUsers()
	roles := &memRoles{}
	svc := NewRoleService(users, roles)
	ctx := context.Background()

	u := seedAccount(t, users, "op@example.com")
	u.Roles = []model.UserRole{{UserID: u.ID, Role: model.RoleOperador}}

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "op@example.com", list[0].Email)
	assert.Equal(t, []string{model.RoleOperador}, list[0].Roles)
}
