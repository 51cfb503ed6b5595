//go:build unit

package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"reimburse-api/internal/domain/document"
	"reimburse-api/internal/pkg/clock"
	"reimburse-api/internal/usecase/commands"
	"reimburse-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocumentFixture() (*fakeDocRepo, *blobStoreFake, *fakeDB, commands.DocumentCommands) {
	docs := &fakeDocRepo{}
	store := &blobStoreFake{}
	db := &fakeDB{}
	cmds := commands.NewDocumentCommands(docs, store, db,
		clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)), slog.Default())
	return docs, store, db, cmds
}

func TestDocumentCommands_SoftDelete(t *testing.T) {
	t.Run("hides an existing document", func(t *testing.T) {
		docs, _, _, cmds := newDocumentFixture()
		d := document.NewDocument(uuid.New(), document.TypeInvoice, "factura.pdf", "application/pdf", 10, time.Now())
		docs.created = append(docs.created, d)

		require.NoError(t, cmds.SoftDelete(context.Background(), d.ID))
		assert.Equal(t, []uuid.UUID{d.ID}, docs.softDeleted)
	})

	t.Run("unknown document id maps to not found", func(t *testing.T) {
		_, _, _, cmds := newDocumentFixture()

		err := cmds.SoftDelete(context.Background(), uuid.New())
		require.ErrorIs(t, err, queries.ErrDocumentNotFound)
	})
}

func TestDocumentCommands_CleanupFailedUploads(t *testing.T) {
	t.Run("hard-deletes rows in a transaction and removes the files", func(t *testing.T) {
		docs, store, db, cmds := newDocumentFixture()
		submissionID := uuid.New()

		require.NoError(t, cmds.CleanupFailedUploads(context.Background(), submissionID))

		assert.Equal(t, []uuid.UUID{submissionID}, docs.hardDeletedSubs)
		assert.Equal(t, []uuid.UUID{submissionID}, store.removedSubmissions)
		require.Len(t, db.txs, 1)
		assert.True(t, db.txs[0].committed)
	})
}
