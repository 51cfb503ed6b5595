package queries

import (
	"context"

	"reimburse-api/internal/domain/audit"
)

type AuditSearcher interface {
	Search(ctx context.Context, f audit.SearchFilter) ([]*audit.Entry, error)
}

type AuditQueries interface {
	Search(ctx context.Context, f audit.SearchFilter) ([]*AuditLogView, error)
}

type auditQueriesImpl struct {
	repo AuditSearcher
}

func NewAuditQueries(repo AuditSearcher) AuditQueries {
	return &auditQueriesImpl{repo: repo}
}

func (q *auditQueriesImpl) Search(ctx context.Context, f audit.SearchFilter) ([]*AuditLogView, error) {
	entries, err := q.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	views := make([]*AuditLogView, 0, len(entries))
	for _, e := range entries {
		views = append(views, &AuditLogView{
			ID:           e.ID,
			ActionType:   e.ActionType,
			ActorType:    string(e.ActorType),
			ActorID:      e.ActorID,
			ResourceType: e.ResourceType,
			ResourceID:   e.ResourceID,
			IP:           e.IP,
			UserAgent:    e.UserAgent,
			Status:       string(e.Status),
			ErrorMessage: e.ErrorMessage,
			RequestID:    e.RequestID,
			CreatedAt:    e.CreatedAt,
		})
	}
	return views, nil
}
