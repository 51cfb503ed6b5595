package repository

import (
	"context"
	"time"

	"reimburse-api/internal/domain/form"
	"reimburse-api/internal/infra"
	"reimburse-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const formColumns = `id, form_token, client_id, policy_id, service_id, name, dni,
	cbu, cuit, email, idempotency_key, external_order_id, status, is_submitted,
	created_at, expires_at, submitted_at`

type FormRepository struct {
	db DBTX
}

func NewFormRepository(db DBTX) *FormRepository {
	return &FormRepository{db: db}
}

func (r *FormRepository) Create(ctx context.Context, tx DBTX, f *form.Form) error {
	attrs := f.Attrs()
	_, err := tx.Exec(ctx, `
		INSERT INTO forms (
			id, form_token, client_id, policy_id, service_id, name, dni,
			cbu, cuit, email, idempotency_key, status, is_submitted,
			created_at, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		f.ID(), f.Token(), attrs.ClientID, attrs.PolicyID, attrs.ServiceID,
		attrs.Name, attrs.DNI,
		pgconv.StringPtrToPgtype(attrs.CBU), pgconv.StringPtrToPgtype(attrs.CUIT),
		attrs.Email, pgconv.UUIDPtrToPgtype(f.IdempotencyKey()),
		f.Status().String(), f.IsSubmitted(), f.CreatedAt(), f.ExpiresAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create form", err)
	}
	return nil
}

func (r *FormRepository) FindByToken(ctx context.Context, token string) (*form.Form, error) {
	row := r.db.QueryRow(ctx, `SELECT `+formColumns+` FROM forms WHERE form_token = $1`, token)
	f, err := scanForm(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find form by token", err)
	}
	return f, nil
}

func (r *FormRepository) FindByID(ctx context.Context, id uuid.UUID) (*form.Form, error) {
	row := r.db.QueryRow(ctx, `SELECT `+formColumns+` FROM forms WHERE id = $1`, id)
	f, err := scanForm(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find form by id", err)
	}
	return f, nil
}

// FindByIdempotencyKey returns the live (non-expired) form created under the
// given key, if any.
func (r *FormRepository) FindByIdempotencyKey(ctx context.Context, key uuid.UUID) (*form.Form, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+formColumns+` FROM forms
		WHERE idempotency_key = $1 AND status <> 'expired'`, key)
	f, err := scanForm(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find form by idempotency key", err)
	}
	return f, nil
}

// MarkExpired persists the lazy pending -> expired transition.
func (r *FormRepository) MarkExpired(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE forms SET status = 'expired' WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to mark form expired", err)
	}
	return nil
}

func (r *FormRepository) MarkSubmitted(ctx context.Context, tx DBTX, id uuid.UUID, submittedAt time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE forms
		SET status = 'submitted', is_submitted = true, submitted_at = $2
		WHERE id = $1`, id, submittedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to mark form submitted", err)
	}
	return nil
}

func (r *FormRepository) SetExternalOrderID(ctx context.Context, tx DBTX, id uuid.UUID, orderID string) error {
	_, err := tx.Exec(ctx, `
		UPDATE forms SET external_order_id = $2 WHERE id = $1`, id, orderID)
	if err != nil {
		return infra.WrapRepoErr("failed to set form external order id", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanForm(row rowScanner) (*form.Form, error) {
	var (
		id              uuid.UUID
		token           string
		attrs           form.Attributes
		cbu, cuit       pgtype.Text
		idemKey         pgtype.UUID
		externalOrderID pgtype.Text
		status          string
		isSubmitted     bool
		createdAt       time.Time
		expiresAt       time.Time
		submittedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&id, &token, &attrs.ClientID, &attrs.PolicyID, &attrs.ServiceID,
		&attrs.Name, &attrs.DNI, &cbu, &cuit, &attrs.Email,
		&idemKey, &externalOrderID, &status, &isSubmitted,
		&createdAt, &expiresAt, &submittedAt,
	)
	if err != nil {
		return nil, err
	}

	attrs.CBU = pgconv.StringPtrFromPgtype(cbu)
	attrs.CUIT = pgconv.StringPtrFromPgtype(cuit)

	return form.ReconstructForm(
		id, token, attrs,
		pgconv.UUIDPtrFromPgtype(idemKey),
		pgconv.StringPtrFromPgtype(externalOrderID),
		form.Status(status), isSubmitted,
		createdAt, expiresAt,
		pgconv.TimePtrFromPgtype(submittedAt),
	), nil
}
