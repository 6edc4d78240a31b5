package rbac

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go-hrpay/internal/domain"
	"go-hrpay/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"role not found",
		http.StatusNotFound,
	)
	ErrDuplicateRoleName = apperror.New(
		apperror.CodeConflict,
		"a role with this name already exists",
		http.StatusConflict,
	)
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadPolicy() error
	Enforce(req domain.EnforceRequest) (bool, error)

	ListRoles() ([]domain.RoleResponse, error)
	GetRole(id string) (domain.RoleResponse, error)
	CreateRole(req CreateRoleRequest) (domain.RoleResponse, error)
	UpdateRole(id string, req UpdateRoleRequest) (domain.RoleResponse, error)
	DeleteRole(id string) error
	ListPermissions() ([]domain.PermissionResponse, error)
	UpdateRolePermissions(roleID string, permIDs []string) error
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) LoadPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadPolicyUnlocked()
}

func (s *service) loadPolicyUnlocked() error {
	s.enforcer.ClearPolicy()

	employeeRoles, err := s.repo.GetEmployeeRoles()
	if err != nil {
		return err
	}

	for _, er := range employeeRoles {
		if _, err := s.enforcer.AddGroupingPolicy(er.EmployeeID, er.RoleID); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions()
	if err != nil {
		return err
	}

	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Debug("rbac policy loaded",
		zap.Int("employee_roles", len(employeeRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)

	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadPolicyUnlocked(); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(req.EmployeeID, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("employee_id", req.EmployeeID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}

func (s *service) ListRoles() ([]domain.RoleResponse, error) {
	roles, err := s.repo.ListRoles()
	if err != nil {
		return nil, err
	}

	res := make([]domain.RoleResponse, 0, len(roles))
	for _, role := range roles {
		perms, err := s.repo.GetPermissionsByRoleID(role.ID)
		if err != nil {
			return nil, err
		}
		res = append(res, mapRoleResponse(role, perms))
	}
	return res, nil
}

func (s *service) GetRole(id string) (domain.RoleResponse, error) {
	role, err := s.repo.GetRoleByID(id)
	if err != nil {
		return domain.RoleResponse{}, mapRoleError(err)
	}

	perms, err := s.repo.GetPermissionsByRoleID(role.ID)
	if err != nil {
		return domain.RoleResponse{}, err
	}
	return mapRoleResponse(*role, perms), nil
}

func (s *service) CreateRole(req CreateRoleRequest) (domain.RoleResponse, error) {
	if existing, err := s.repo.GetRoleByName(req.Name); err == nil && existing != nil {
		return domain.RoleResponse{}, ErrDuplicateRoleName
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RoleResponse{}, err
	}

	role := &RoleRow{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.CreateRole(role); err != nil {
		return domain.RoleResponse{}, err
	}

	s.logger.Info("role created", zap.String("role_id", role.ID), zap.String("name", role.Name))
	return mapRoleResponse(*role, nil), nil
}

func (s *service) UpdateRole(id string, req UpdateRoleRequest) (domain.RoleResponse, error) {
	role, err := s.repo.GetRoleByID(id)
	if err != nil {
		return domain.RoleResponse{}, mapRoleError(err)
	}

	role.Name = req.Name
	role.Description = req.Description
	if err := s.repo.UpdateRole(role); err != nil {
		return domain.RoleResponse{}, err
	}

	perms, err := s.repo.GetPermissionsByRoleID(role.ID)
	if err != nil {
		return domain.RoleResponse{}, err
	}
	return mapRoleResponse(*role, perms), nil
}

func (s *service) DeleteRole(id string) error {
	if _, err := s.repo.GetRoleByID(id); err != nil {
		return mapRoleError(err)
	}
	if err := s.repo.DeleteRole(id); err != nil {
		return err
	}

	s.logger.Info("role deleted", zap.String("role_id", id))
	return nil
}

func (s *service) ListPermissions() ([]domain.PermissionResponse, error) {
	perms, err := s.repo.ListPermissions()
	if err != nil {
		return nil, err
	}

	res := make([]domain.PermissionResponse, len(perms))
	for i, p := range perms {
		res[i] = domain.PermissionResponse{
			ID:       p.ID,
			Resource: p.Resource,
			Action:   p.Action,
			Label:    p.Label,
			Category: p.Category,
		}
	}
	return res, nil
}

func (s *service) UpdateRolePermissions(roleID string, permIDs []string) error {
	if _, err := s.repo.GetRoleByID(roleID); err != nil {
		return mapRoleError(err)
	}
	if err := s.repo.UpdateRolePermissions(roleID, permIDs); err != nil {
		return err
	}

	s.logger.Info("role permissions updated",
		zap.String("role_id", roleID),
		zap.Int("permission_count", len(permIDs)),
	)
	return nil
}

func mapRoleResponse(role RoleRow, perms []PermissionRow) domain.RoleResponse {
	permissions := make([]string, len(perms))
	for i, p := range perms {
		permissions[i] = fmt.Sprintf("%s:%s", p.Resource, p.Action)
	}
	return domain.RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: permissions,
	}
}

func mapRoleError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRoleNotFound
	}
	return err
}
