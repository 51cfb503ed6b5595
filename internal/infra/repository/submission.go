package repository

import (
	"context"

	"reimburse-api/internal/domain/form"
	"reimburse-api/internal/infra"
	"reimburse-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type SubmissionRepository struct {
	db DBTX
}

func NewSubmissionRepository(db DBTX) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, tx DBTX, s *form.Submission) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO form_submissions (id, form_id, cbu, cuit, email, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.FormID,
		pgconv.StringPtrToPgtype(s.CBU), pgconv.StringPtrToPgtype(s.CUIT),
		s.Email, s.SubmittedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create submission", err)
	}
	return nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*form.Submission, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, form_id, cbu, cuit, email, submitted_at, external_response, external_status
		FROM form_submissions WHERE id = $1`, id)
	s, err := scanSubmission(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find submission", err)
	}
	return s, nil
}

func (r *SubmissionRepository) FindByFormID(ctx context.Context, formID uuid.UUID) (*form.Submission, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, form_id, cbu, cuit, email, submitted_at, external_response, external_status
		FROM form_submissions WHERE form_id = $1`, formID)
	s, err := scanSubmission(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find submission by form", err)
	}
	return s, nil
}

// SetExternalResult stores the raw upstream response after a successful sync.
func (r *SubmissionRepository) SetExternalResult(ctx context.Context, tx DBTX, id uuid.UUID, response []byte, status string) error {
	_, err := tx.Exec(ctx, `
		UPDATE form_submissions
		SET external_response = $2, external_status = $3
		WHERE id = $1`, id, response, status)
	if err != nil {
		return infra.WrapRepoErr("failed to set submission external result", err)
	}
	return nil
}

func scanSubmission(row rowScanner) (*form.Submission, error) {
	var (
		s              form.Submission
		cbu, cuit      pgtype.Text
		externalStatus pgtype.Text
	)
	err := row.Scan(&s.ID, &s.FormID, &cbu, &cuit, &s.Email, &s.SubmittedAt,
		&s.ExternalResponse, &externalStatus)
	if err != nil {
		return nil, err
	}
	s.CBU = pgconv.StringPtrFromPgtype(cbu)
	s.CUIT = pgconv.StringPtrFromPgtype(cuit)
	s.ExternalStatus = pgconv.StringPtrFromPgtype(externalStatus)
	return &s, nil
}
