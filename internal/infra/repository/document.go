package repository

import (
	"context"
	"time"

	"reimburse-api/internal/domain/document"
	"reimburse-api/internal/infra"
	"reimburse-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const documentColumns = `id, submission_id, doc_type, storage_name, display_name,
	size, mime_type, uploaded_at, is_deleted, deleted_at`

type DocumentRepository struct {
	db DBTX
}

func NewDocumentRepository(db DBTX) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, tx DBTX, d *document.Document) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO documents (
			id, submission_id, doc_type, storage_name, display_name,
			size, mime_type, uploaded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		d.ID, d.SubmissionID, d.Type.String(), d.StorageName, d.DisplayName,
		d.Size, d.MIMEType, d.UploadedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create document", err)
	}
	return nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id uuid.UUID, withDeleted bool) (*document.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	if !withDeleted {
		q += ` AND is_deleted = false`
	}
	d, err := scanDocument(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find document", err)
	}
	return d, nil
}

func (r *DocumentRepository) ListBySubmission(ctx context.Context, submissionID uuid.UUID, withDeleted bool) ([]*document.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE submission_id = $1`
	if !withDeleted {
		q += ` AND is_deleted = false`
	}
	q += ` ORDER BY uploaded_at`

	rows, err := r.db.Query(ctx, q, submissionID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list documents", err)
	}
	defer rows.Close()

	var docs []*document.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan document", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate documents", err)
	}
	return docs, nil
}

func (r *DocumentRepository) SoftDelete(ctx context.Context, tx DBTX, id uuid.UUID, now time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE documents SET is_deleted = true, deleted_at = $2
		WHERE id = $1 AND is_deleted = false`, id, now)
	if err != nil {
		return infra.WrapRepoErr("failed to soft-delete document", err)
	}
	return nil
}

func (r *DocumentRepository) HardDelete(ctx context.Context, tx DBTX, id uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to hard-delete document", err)
	}
	return nil
}

// HardDeleteBySubmission removes every record for the submission, including
// soft-deleted ones. Used by failed-upload cleanup.
func (r *DocumentRepository) HardDeleteBySubmission(ctx context.Context, tx DBTX, submissionID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM documents WHERE submission_id = $1`, submissionID)
	if err != nil {
		return infra.WrapRepoErr("failed to hard-delete submission documents", err)
	}
	return nil
}

func scanDocument(row rowScanner) (*document.Document, error) {
	var (
		d         document.Document
		docType   string
		deletedAt pgtype.Timestamptz
	)
	err := row.Scan(&d.ID, &d.SubmissionID, &docType, &d.StorageName,
		&d.DisplayName, &d.Size, &d.MIMEType, &d.UploadedAt, &d.IsDeleted, &deletedAt)
	if err != nil {
		return nil, err
	}
	d.Type = document.Type(docType)
	d.DeletedAt = pgconv.TimePtrFromPgtype(deletedAt)
	return &d, nil
}
