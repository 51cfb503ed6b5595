package repository

import (
	"context"
	"fmt"
	"strings"

	"reimburse-api/internal/domain/audit"
	"reimburse-api/internal/infra"
	"reimburse-api/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

const auditDefaultLimit = 50
const auditMaxLimit = 500

type AuditRepository struct {
	db DBTX
}

func NewAuditRepository(db DBTX) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, e *audit.Entry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_logs (
			action_type, actor_type, actor_id, resource_type, resource_id,
			ip, user_agent, request_payload, response_payload,
			status, error_message, request_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		e.ActionType, string(e.ActorType),
		pgconv.StringPtrToPgtype(e.ActorID),
		pgconv.StringPtrToPgtype(e.ResourceType),
		pgconv.StringPtrToPgtype(e.ResourceID),
		e.IP, e.UserAgent, e.RequestPayload, e.ResponsePayload,
		string(e.Status), pgconv.StringPtrToPgtype(e.ErrorMessage),
		e.RequestID, e.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert audit entry", err)
	}
	return nil
}

func (r *AuditRepository) Search(ctx context.Context, f audit.SearchFilter) ([]*audit.Entry, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.ActionType != "" {
		add("action_type = $%d", f.ActionType)
	}
	if f.ActorType != "" {
		add("actor_type = $%d", f.ActorType)
	}
	if f.ActorID != "" {
		add("actor_id = $%d", f.ActorID)
	}
	if f.ResourceType != "" {
		add("resource_type = $%d", f.ResourceType)
	}
	if f.ResourceID != "" {
		add("resource_id = $%d", f.ResourceID)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.RequestID != "" {
		add("request_id = $%d", f.RequestID)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}

	q := `SELECT id, action_type, actor_type, actor_id, resource_type, resource_id,
		ip, user_agent, request_payload, response_payload,
		status, error_message, request_id, created_at
		FROM audit_logs`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = auditDefaultLimit
	}
	if limit > auditMaxLimit {
		limit = auditMaxLimit
	}
	args = append(args, limit)
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	if f.Offset > 0 {
		args = append(args, f.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search audit logs", err)
	}
	defer rows.Close()

	var entries []*audit.Entry
	for rows.Next() {
		var (
			e                       audit.Entry
			actorType, status       string
			actorID, resType, resID pgtype.Text
			errorMessage            pgtype.Text
		)
		err := rows.Scan(&e.ID, &e.ActionType, &actorType, &actorID, &resType,
			&resID, &e.IP, &e.UserAgent, &e.RequestPayload, &e.ResponsePayload,
			&status, &errorMessage, &e.RequestID, &e.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan audit entry", err)
		}
		e.ActorType = audit.ActorType(actorType)
		e.Status = audit.Status(status)
		e.ActorID = pgconv.StringPtrFromPgtype(actorID)
		e.ResourceType = pgconv.StringPtrFromPgtype(resType)
		e.ResourceID = pgconv.StringPtrFromPgtype(resID)
		e.ErrorMessage = pgconv.StringPtrFromPgtype(errorMessage)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate audit logs", err)
	}
	return entries, nil
}
