package repository

import (
	"context"

	"reimburse-api/internal/domain/form"
	"reimburse-api/internal/infra"
	"reimburse-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const accessLinkColumns = `id, submission_id, token, external_order_id,
	created_by, expires_at, is_active, created_at`

type AccessLinkRepository struct {
	db DBTX
}

func NewAccessLinkRepository(db DBTX) *AccessLinkRepository {
	return &AccessLinkRepository{db: db}
}

func (r *AccessLinkRepository) Create(ctx context.Context, tx DBTX, l *form.AccessLink) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO access_links (
			id, submission_id, token, created_by, expires_at, is_active, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.SubmissionID, l.Token,
		pgconv.UUIDPtrToPgtype(l.CreatedBy), pgconv.TimePtrToPgtype(l.ExpiresAt),
		l.IsActive, l.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create access link", err)
	}
	return nil
}

func (r *AccessLinkRepository) FindByToken(ctx context.Context, token string) (*form.AccessLink, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+accessLinkColumns+` FROM access_links WHERE token = $1`, token)
	l, err := scanAccessLink(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find access link", err)
	}
	return l, nil
}

func (r *AccessLinkRepository) FindByID(ctx context.Context, id uuid.UUID) (*form.AccessLink, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+accessLinkColumns+` FROM access_links WHERE id = $1`, id)
	l, err := scanAccessLink(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find access link by id", err)
	}
	return l, nil
}

func (r *AccessLinkRepository) SetExternalOrderID(ctx context.Context, tx DBTX, id uuid.UUID, orderID string) error {
	_, err := tx.Exec(ctx, `
		UPDATE access_links SET external_order_id = $2 WHERE id = $1`, id, orderID)
	if err != nil {
		return infra.WrapRepoErr("failed to set access link order id", err)
	}
	return nil
}

func (r *AccessLinkRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE access_links SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to deactivate access link", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("access link not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanAccessLink(row rowScanner) (*form.AccessLink, error) {
	var (
		l               form.AccessLink
		externalOrderID pgtype.Text
		createdBy       pgtype.UUID
		expiresAt       pgtype.Timestamptz
	)
	err := row.Scan(&l.ID, &l.SubmissionID, &l.Token, &externalOrderID,
		&createdBy, &expiresAt, &l.IsActive, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	l.ExternalOrderID = pgconv.StringPtrFromPgtype(externalOrderID)
	l.CreatedBy = pgconv.UUIDPtrFromPgtype(createdBy)
	l.ExpiresAt = pgconv.TimePtrFromPgtype(expiresAt)
	return &l, nil
}
