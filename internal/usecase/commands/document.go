package commands

import (
	"context"
	"log/slog"

	"reimburse-api/internal/infra"
	"reimburse-api/internal/pkg/clock"
	"reimburse-api/internal/pkg/errs"
	"reimburse-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type DocumentCommands interface {
	// SoftDelete hides the document from reads. The stored file stays on
	// disk until a cleanup pass.
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// CleanupFailedUploads hard-deletes every document of the submission,
	// soft-deleted ones included, rows and files both.
	CleanupFailedUploads(ctx context.Context, submissionID uuid.UUID) error
}

type documentCommandsImpl struct {
	documents DocumentRepository
	store     BlobStore
	db        DB
	clock     clock.Clock
	logger    *slog.Logger
}

func NewDocumentCommands(documents DocumentRepository, store BlobStore, db DB, clk clock.Clock, logger *slog.Logger) DocumentCommands {
	return &documentCommandsImpl{
		documents: documents,
		store:     store,
		db:        db,
		clock:     clk,
		logger:    logger,
	}
}

func (d *documentCommandsImpl) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if _, err := d.documents.FindByID(ctx, id, false); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, queries.ErrDocumentNotFound)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := d.documents.SoftDelete(ctx, d.db, id, d.clock.Now()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (d *documentCommandsImpl) CleanupFailedUploads(ctx context.Context, submissionID uuid.UUID) error {
	tx, err := d.db.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			d.logger.Warn("failed to rollback cleanup transaction", "error", rollbackErr)
		}
	}()

	if err := d.documents.HardDeleteBySubmission(ctx, tx, submissionID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	committed = true

	if err := d.store.RemoveSubmission(submissionID); err != nil {
		d.logger.Warn("failed to remove submission files", "submission_id", submissionID, "error", err)
	}
	return nil
}
