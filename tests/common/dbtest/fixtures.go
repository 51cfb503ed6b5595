//go:build e2e

package dbtest

import (
	"context"
	"fmt"
	"time"

	"reimburse-api/internal/pkg/apikey"
	"reimburse-api/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Fixed credentials known to every e2e test.
const (
	OperatorEmail    = "operator@example.com"
	OperatorPassword = "operator-password-1"
	SuperuserEmail   = "admin@example.com"
	AdminPassword    = "admin-password-1"
	ServiceAPIKey    = "e2e-service-key"
)

var (
	OperatorID  = uuid.MustParse("019117f0-0000-7000-8000-000000000001")
	SuperuserID = uuid.MustParse("019117f0-0000-7000-8000-000000000002")
)

// SeedReferenceData inserts the operators, api key and ACL baseline every e2e
// test depends on.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	operatorHash, err := password.HashPassword(OperatorPassword)
	if err != nil {
		return fmt.Errorf("failed to hash operator password: %w", err)
	}
	adminHash, err := password.HashPassword(AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	statements := []struct {
		sql  string
		args []any
	}{
		{
			sql:  `INSERT INTO operators (id, email, name, password_hash, is_superuser) VALUES ($1, $2, 'E2E Operator', $3, false)`,
			args: []any{OperatorID, OperatorEmail, operatorHash},
		},
		{
			sql:  `INSERT INTO operators (id, email, name, password_hash, is_superuser) VALUES ($1, $2, 'E2E Admin', $3, true)`,
			args: []any{SuperuserID, SuperuserEmail, adminHash},
		},
		{
			sql:  `INSERT INTO api_keys (name, key_hash) VALUES ('e2e-service', $1)`,
			args: []any{apikey.Hash(ServiceAPIKey)},
		},
		{
			sql: `INSERT INTO roles (name) VALUES ('reviewer')`,
		},
		{
			sql: `INSERT INTO permissions (name) VALUES ('view_submission'), ('manage_acl')`,
		},
		{
			sql: `INSERT INTO role_permissions (role_id, permission_id)
			      SELECT r.id, p.id FROM roles r, permissions p
			      WHERE r.name = 'reviewer' AND p.name = 'view_submission'`,
		},
		{
			sql:  `INSERT INTO user_roles (user_id, role_id) SELECT $1, id FROM roles WHERE name = 'reviewer'`,
			args: []any{OperatorID},
		},
	}

	for _, st := range statements {
		if _, err := pool.Exec(ctx, st.sql, st.args...); err != nil {
			return fmt.Errorf("seed statement failed: %w", err)
		}
	}
	return nil
}

// ResetDB truncates all mutable tables and reseeds the reference data.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, `
		TRUNCATE audit_logs, resource_permissions, user_roles, role_permissions,
		         permissions, roles, access_links, documents, form_submissions,
		         forms, api_keys, operators CASCADE`)
	if err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return SeedReferenceData(pool)
}
