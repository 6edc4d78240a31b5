package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRepo struct {
	Repository
	roles       []RoleRow
	permsByRole map[string][]PermissionRow
	deleted     []string
	updated     map[string][]string
}

func (f *fakeRepo) ListRoles() ([]RoleRow, error) { return f.roles, nil }

func (f *fakeRepo) GetRoleByID(id string) (*RoleRow, error) {
	for i := range f.roles {
		if f.roles[i].ID == id {
			cp := f.roles[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetRoleByName(name string) (*RoleRow, error) {
	for i := range f.roles {
		if f.roles[i].Name == name {
			cp := f.roles[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateRole(role *RoleRow) error {
	role.ID = "generated-id"
	f.roles = append(f.roles, *role)
	return nil
}

func (f *fakeRepo) UpdateRole(role *RoleRow) error {
	for i := range f.roles {
		if f.roles[i].ID == role.ID {
			f.roles[i] = *role
		}
	}
	return nil
}

func (f *fakeRepo) DeleteRole(id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) GetPermissionsByRoleID(roleID string) ([]PermissionRow, error) {
	return f.permsByRole[roleID], nil
}

func (f *fakeRepo) ListPermissions() ([]PermissionRow, error) {
	var all []PermissionRow
	for _, perms := range f.permsByRole {
		all = append(all, perms...)
	}
	return all, nil
}

func (f *fakeRepo) UpdateRolePermissions(roleID string, permIDs []string) error {
	if f.updated == nil {
		f.updated = map[string][]string{}
	}
	f.updated[roleID] = permIDs
	return nil
}

func newManagementService(repo Repository) Service {
	return &service{repo: repo, logger: zap.NewNop()}
}

func TestListRoles_IncludesPermissions(t *testing.T) {
	repo := &fakeRepo{
		roles: []RoleRow{{ID: "r1", Name: "payroll-admin"}},
		permsByRole: map[string][]PermissionRow{
			"r1": {
				{ID: "p1", Resource: "payroll", Action: "process"},
				{ID: "p2", Resource: "payslip", Action: "approve"},
			},
		},
	}

	svc := newManagementService(repo)

	roles, err := svc.ListRoles()
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, []string{"payroll:process", "payslip:approve"}, roles[0].Permissions)
}

func TestCreateRole_RejectsDuplicateName(t *testing.T) {
	repo := &fakeRepo{roles: []RoleRow{{ID: "r1", Name: "payroll-admin"}}}

	svc := newManagementService(repo)

	_, err := svc.CreateRole(CreateRoleRequest{Name: "payroll-admin"})
	assert.ErrorIs(t, err, ErrDuplicateRoleName)
}

func TestCreateRole(t *testing.T) {
	repo := &fakeRepo{}

	svc := newManagementService(repo)

	resp, err := svc.CreateRole(CreateRoleRequest{Name: "hr-viewer", Description: "read only"})
	require.NoError(t, err)
	assert.Equal(t, "generated-id", resp.ID)
	assert.Equal(t, "hr-viewer", resp.Name)
	assert.Empty(t, resp.Permissions)
}

func TestUpdateRole_NotFound(t *testing.T) {
	svc := newManagementService(&fakeRepo{})

	_, err := svc.UpdateRole("missing", UpdateRoleRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestUpdateRolePermissions(t *testing.T) {
	repo := &fakeRepo{roles: []RoleRow{{ID: "r1", Name: "payroll-admin"}}}

	svc := newManagementService(repo)

	err := svc.UpdateRolePermissions("r1", []string{"p1", "p2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, repo.updated["r1"])
}

func TestDeleteRole(t *testing.T) {
	repo := &fakeRepo{roles: []RoleRow{{ID: "r1", Name: "payroll-admin"}}}

	svc := newManagementService(repo)

	require.NoError(t, svc.DeleteRole("r1"))
	assert.Equal(t, []string{"r1"}, repo.deleted)

	err := svc.DeleteRole("missing")
	assert.ErrorIs(t, err, ErrRoleNotFound)
}
