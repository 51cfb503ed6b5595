package repository

import (
	"context"

	"reimburse-api/internal/infra"

	"github.com/google/uuid"
)

type ACLRepository struct {
	db DBTX
}

func NewACLRepository(db DBTX) *ACLRepository {
	return &ACLRepository{db: db}
}

// HasRolePermission reports whether any of the user's active roles grants the
// named permission. Role grants are resource-agnostic; deactivated roles and
// permissions grant nothing.
func (r *ACLRepository) HasRolePermission(ctx context.Context, userID uuid.UUID, permission string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM user_roles ur
			JOIN roles r ON r.id = ur.role_id
			JOIN role_permissions rp ON rp.role_id = ur.role_id
			JOIN permissions p ON p.id = rp.permission_id
			WHERE ur.user_id = $1 AND p.name = $2
			  AND r.is_active AND p.is_active
		)`, userID, permission).Scan(&ok)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check role permission", err)
	}
	return ok, nil
}

// HasResourcePermission reports whether the user holds a direct grant for the
// exact (permission, resourceType, resourceID) triple. A grant on a
// deactivated permission does not count.
func (r *ACLRepository) HasResourcePermission(ctx context.Context, userID uuid.UUID, permission, resourceType, resourceID string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM resource_permissions g
			JOIN permissions p ON p.id = g.permission_id
			WHERE g.user_id = $1 AND p.name = $2
			  AND g.resource_type = $3 AND g.resource_id = $4
			  AND p.is_active
		)`, userID, permission, resourceType, resourceID).Scan(&ok)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check resource permission", err)
	}
	return ok, nil
}

func (r *ACLRepository) CreateRole(ctx context.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO roles (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create role", err)
	}
	return id, nil
}

func (r *ACLRepository) CreatePermission(ctx context.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO permissions (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create permission", err)
	}
	return id, nil
}

func (r *ACLRepository) AddPermissionToRole(ctx context.Context, roleName, permissionName string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO role_permissions (role_id, permission_id)
		SELECT r.id, p.id FROM roles r, permissions p
		WHERE r.name = $1 AND p.name = $2
		ON CONFLICT DO NOTHING`, roleName, permissionName)
	if err != nil {
		return infra.WrapRepoErr("failed to add permission to role", err)
	}
	return nil
}

func (r *ACLRepository) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = $2
		ON CONFLICT DO NOTHING`, userID, roleName)
	if err != nil {
		return infra.WrapRepoErr("failed to assign role", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM roles WHERE name = $1)`, roleName).Scan(&exists); err != nil {
			return infra.WrapRepoErr("failed to verify role", err)
		}
		if !exists {
			return infra.WrapRepoErr("role not found", nil, infra.KindNotFound)
		}
	}
	return nil
}

func (r *ACLRepository) GrantResourcePermission(ctx context.Context, userID uuid.UUID, permission, resourceType, resourceID string) error {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO resource_permissions (user_id, permission_id, resource_type, resource_id)
		SELECT $1, id, $3, $4 FROM permissions WHERE name = $2
		ON CONFLICT DO NOTHING`, userID, permission, resourceType, resourceID)
	if err != nil {
		return infra.WrapRepoErr("failed to grant resource permission", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM permissions WHERE name = $1)`, permission).Scan(&exists); err != nil {
			return infra.WrapRepoErr("failed to verify permission", err)
		}
		if !exists {
			return infra.WrapRepoErr("permission not found", nil, infra.KindNotFound)
		}
	}
	return nil
}

func (r *ACLRepository) RevokeResourcePermission(ctx context.Context, userID uuid.UUID, permission, resourceType, resourceID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM resource_permissions g
		USING permissions p
		WHERE g.permission_id = p.id
		  AND g.user_id = $1 AND p.name = $2
		  AND g.resource_type = $3 AND g.resource_id = $4`,
		userID, permission, resourceType, resourceID)
	if err != nil {
		return infra.WrapRepoErr("failed to revoke resource permission", err)
	}
	return nil
}

type ResourceGrant struct {
	Permission   string
	ResourceType string
	ResourceID   string
}

func (r *ACLRepository) ListResourceGrants(ctx context.Context, userID uuid.UUID) ([]ResourceGrant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.name, g.resource_type, g.resource_id
		FROM resource_permissions g
		JOIN permissions p ON p.id = g.permission_id
		WHERE g.user_id = $1
		ORDER BY p.name, g.resource_type, g.resource_id`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resource grants", err)
	}
	defer rows.Close()

	var grants []ResourceGrant
	for rows.Next() {
		var g ResourceGrant
		if err := rows.Scan(&g.Permission, &g.ResourceType, &g.ResourceID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource grant", err)
		}
		grants = append(grants, g)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate resource grants", err)
	}
	return grants, nil
}
