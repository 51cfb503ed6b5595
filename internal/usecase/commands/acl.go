package commands

import (
	"context"
	"fmt"
	"log/slog"

	"reimburse-api/internal/infra"
	"reimburse-api/internal/infra/repository"
	"reimburse-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrPermissionDenied = errs.New("permission denied")
	ErrRoleNotFound     = errs.New("role not found")
	ErrACLConflict      = errs.New("role or permission already exists")
)

// PermissionDeniedError carries the denied triple for audit trails. It
// matches ErrPermissionDenied under errors.Is.
type PermissionDeniedError struct {
	ActorID      uuid.UUID
	Permission   string
	ResourceType string
	ResourceID   string
}

func (e *PermissionDeniedError) Error() string {
	if e.ResourceType == "" {
		return fmt.Sprintf("permission denied: actor=%s permission=%s", e.ActorID, e.Permission)
	}
	return fmt.Sprintf("permission denied: actor=%s permission=%s resource=%s/%s",
		e.ActorID, e.Permission, e.ResourceType, e.ResourceID)
}

func (e *PermissionDeniedError) Is(target error) bool {
	return target == ErrPermissionDenied
}

type ACLCommands interface {
	CheckEndpointPermission(ctx context.Context, operatorID uuid.UUID, permission string) (bool, error)
	CheckResourcePermission(ctx context.Context, operatorID uuid.UUID, permission, resourceType, resourceID string) (bool, error)
	RequireEndpointPermission(ctx context.Context, operatorID uuid.UUID, permission string) error
	RequireResourcePermission(ctx context.Context, operatorID uuid.UUID, permission, resourceType, resourceID string) error

	CreateRole(ctx context.Context, name string) (uuid.UUID, error)
	CreatePermission(ctx context.Context, name string) (uuid.UUID, error)
	AddPermissionToRole(ctx context.Context, roleName, permissionName string) error
	AssignRole(ctx context.Context, operatorID uuid.UUID, roleName string) error
	GrantResourcePermission(ctx context.Context, operatorID uuid.UUID, permission, resourceType, resourceID string) error
	RevokeResourcePermission(ctx context.Context, operatorID uuid.UUID, permission, resourceType, resourceID string) error
	ListResourceGrants(ctx context.Context, operatorID uuid.UUID) ([]repository.ResourceGrant, error)
}

type aclCommandsImpl struct {
	store     ACLStore
	operators OperatorRepository
	logger    *slog.Logger
}

func NewACLCommands(store ACLStore, operators OperatorRepository, logger *slog.Logger) ACLCommands {
	return &aclCommandsImpl{store: store, operators: operators, logger: logger}
}

// isSuperuser reports whether the actor bypasses all checks. Every bypass is
// logged so it shows up in reviews.
func (a *aclCommandsImpl) isSuperuser(ctx context.Context, operatorID uuid.UUID, permission, resourceType, resourceID string) (bool, error) {
	if operatorID == uuid.Nil {
		return false, nil
	}
	op, err := a.operators.FindByID(ctx, operatorID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	if !op.IsActive || !op.IsSuperuser {
		return false, nil
	}
	a.logger.Warn("superuser permission bypass",
		"operator_id", operatorID,
		"permission", permission,
		"resource_type", resourceType,
		"resource_id", resourceID,
	)
	return true, nil
}

func (a *aclCommandsImpl) CheckEndpointPermission(ctx context.Context, operatorID uuid.UUID, permission string) (bool, error) {
	if operatorID == uuid.Nil {
		return false, nil
	}
	if super, err := a.isSuperuser(ctx, operatorID, permission, "", ""); err != nil || super {
		return super, err
	}
	return a.store.HasRolePermission(ctx, operatorID, permission)
}

// CheckResourcePermission grants when either a role carries the permission
// (any resource) or a direct grant names this exact resource.
func (a *aclCommandsImpl) CheckResourcePermission(ctx context.Context, operatorID uuid.UUID, permission, resourceType, resourceID string) (bool, error) {
	if operatorID == uuid.Nil {
		return false, nil
	}
	if super, err := a.isSuperuser(ctx, operatorID, permission, resourceType, resourceID); err != nil || super {
		return super, err
	}

	ok, err := a.store.HasRolePermission(ctx, operatorID, permission)
	if err != nil || ok {
		return ok, err
	}
	return a.store.HasResourcePermission(ctx, operatorID, permission, resourceType, resourceID)
}

func (a *aclCommandsImpl) RequireEndpointPermission(ctx context.Context, operatorID uuid.UUID, permission string) error {
	ok, err := a.CheckEndpointPermission(ctx, operatorID, permission)
	if err != nil {
		return err
	}
	if !ok {
		return &PermissionDeniedError{ActorID: operatorID, Permission: permission}
	}
	return nil
}

func (a *aclCommandsImpl) RequireResourcePermission(ctx context.Context, operatorID uuid.UUID, permission, resourceType, resourceID string) error {
	ok, err := a.CheckResourcePermission(ctx, operatorID, permission, resourceType, resourceID)
	if err != nil {
		return err
	}
	if !ok {
		return &PermissionDeniedError{
			ActorID:      operatorID,
			Permission:   permission,
			ResourceType: resourceType,
			ResourceID:   resourceID,
		}
	}
	return nil
}

func (a *aclCommandsImpl) CreateRole(ctx context.Context, name string) (uuid.UUID, error) {
	id, err := a.store.CreateRole(ctx, name)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, errs.Mark(err, ErrACLConflict)
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (a *aclCommandsImpl) CreatePermission(ctx context.Context, name string) (uuid.UUID, error) {
	id, err := a.store.CreatePermission(ctx, name)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, errs.Mark(err, ErrACLConflict)
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (a *aclCommandsImpl) AddPermissionToRole(ctx context.Context, roleName, permissionName string) error {
	return a.store.AddPermissionToRole(ctx, roleName, permissionName)
}

func (a *aclCommandsImpl) AssignRole(ctx context.Context, operatorID uuid.UUID, roleName string) error {
	if err := a.store.AssignRole(ctx, operatorID, roleName); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrRoleNotFound)
		}
		return err
	}
	return nil
}

func (a *aclCommandsImpl) GrantResourcePermission(ctx context.Context, operatorID uuid.UUID, permission, resourceType, resourceID string) error {
	if err := a.store.GrantResourcePermission(ctx, operatorID, permission, resourceType, resourceID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrRoleNotFound)
		}
		return err
	}
	return nil
}

func (a *aclCommandsImpl) RevokeResourcePermission(ctx context.Context, operatorID uuid.UUID, permission, resourceType, resourceID string) error {
	return a.store.RevokeResourcePermission(ctx, operatorID, permission, resourceType, resourceID)
}

func (a *aclCommandsImpl) ListResourceGrants(ctx context.Context, operatorID uuid.UUID) ([]repository.ResourceGrant, error) {
	return a.store.ListResourceGrants(ctx, operatorID)
}
