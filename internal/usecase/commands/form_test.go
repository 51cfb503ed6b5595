//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"reimburse-api/internal/domain/document"
	"reimburse-api/internal/domain/form"
	"reimburse-api/internal/infra"
	"reimburse-api/internal/infra/external"
	"reimburse-api/internal/infra/repository"
	"reimburse-api/internal/pkg/breaker"
	"reimburse-api/internal/pkg/clock"
	"reimburse-api/internal/pkg/errs"
	"reimburse-api/internal/usecase/commands"
	"reimburse-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(context.Context) error { t.rolledBack = true; return nil }

type fakeDB struct {
	txs []*fakeTx
}

func (d *fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (d *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (d *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }
func (d *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	tx := &fakeTx{}
	d.txs = append(d.txs, tx)
	return tx, nil
}

func notFoundErr() error {
	return infra.WrapRepoErr("not found", pgx.ErrNoRows)
}

type fakeFormRepo struct {
	byToken map[string]*form.Form
	byKey   map[uuid.UUID]*form.Form
	// missFirstKeyLookup simulates a writer racing in between the replay
	// check and the insert.
	missFirstKeyLookup bool
	createErr          error
	created            []*form.Form
	expired            []uuid.UUID
	submitted          []uuid.UUID
	orderIDs           map[uuid.UUID]string
}

func newFakeFormRepo() *fakeFormRepo {
	return &fakeFormRepo{
		byToken:  map[string]*form.Form{},
		byKey:    map[uuid.UUID]*form.Form{},
		orderIDs: map[uuid.UUID]string{},
	}
}

func (r *fakeFormRepo) Create(_ context.Context, _ repository.DBTX, f *form.Form) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, f)
	r.byToken[f.Token()] = f
	if k := f.IdempotencyKey(); k != nil {
		r.byKey[*k] = f
	}
	return nil
}

func (r *fakeFormRepo) FindByToken(_ context.Context, token string) (*form.Form, error) {
	if f, ok := r.byToken[token]; ok {
		return f, nil
	}
	return nil, notFoundErr()
}

func (r *fakeFormRepo) FindByIdempotencyKey(_ context.Context, key uuid.UUID) (*form.Form, error) {
	if r.missFirstKeyLookup {
		r.missFirstKeyLookup = false
		return nil, notFoundErr()
	}
	if f, ok := r.byKey[key]; ok {
		return f, nil
	}
	return nil, notFoundErr()
}

func (r *fakeFormRepo) MarkExpired(_ context.Context, id uuid.UUID) error {
	r.expired = append(r.expired, id)
	return nil
}

func (r *fakeFormRepo) MarkSubmitted(_ context.Context, _ repository.DBTX, id uuid.UUID, at time.Time) error {
	r.submitted = append(r.submitted, id)
	for tok, f := range r.byToken {
		if f.ID() == id {
			r.byToken[tok] = form.ReconstructForm(
				f.ID(), f.Token(), f.Attrs(), f.IdempotencyKey(), f.ExternalOrderID(),
				form.StatusSubmitted, true, f.CreatedAt(), f.ExpiresAt(), &at,
			)
		}
	}
	return nil
}

func (r *fakeFormRepo) SetExternalOrderID(_ context.Context, _ repository.DBTX, id uuid.UUID, orderID string) error {
	r.orderIDs[id] = orderID
	return nil
}

type fakeSubmissionRepo struct {
	created []*form.Submission
	results map[uuid.UUID]string
}

func (r *fakeSubmissionRepo) Create(_ context.Context, _ repository.DBTX, s *form.Submission) error {
	r.created = append(r.created, s)
	return nil
}

func (r *fakeSubmissionRepo) FindByID(_ context.Context, id uuid.UUID) (*form.Submission, error) {
	for _, s := range r.created {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, notFoundErr()
}

func (r *fakeSubmissionRepo) SetExternalResult(_ context.Context, _ repository.DBTX, id uuid.UUID, _ []byte, status string) error {
	if r.results == nil {
		r.results = map[uuid.UUID]string{}
	}
	r.results[id] = status
	return nil
}

type fakeDocRepo struct {
	created         []*document.Document
	softDeleted     []uuid.UUID
	hardDeletedSubs []uuid.UUID
	softDeleteErr   error
}

func (r *fakeDocRepo) Create(_ context.Context, _ repository.DBTX, d *document.Document) error {
	r.created = append(r.created, d)
	return nil
}

func (r *fakeDocRepo) FindByID(_ context.Context, id uuid.UUID, _ bool) (*document.Document, error) {
	for _, d := range r.created {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, notFoundErr()
}

func (r *fakeDocRepo) ListBySubmission(_ context.Context, submissionID uuid.UUID, _ bool) ([]*document.Document, error) {
	var out []*document.Document
	for _, d := range r.created {
		if d.SubmissionID == submissionID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDocRepo) SoftDelete(_ context.Context, _ repository.DBTX, id uuid.UUID, _ time.Time) error {
	if r.softDeleteErr != nil {
		return r.softDeleteErr
	}
	r.softDeleted = append(r.softDeleted, id)
	return nil
}

func (r *fakeDocRepo) HardDeleteBySubmission(_ context.Context, _ repository.DBTX, submissionID uuid.UUID) error {
	r.hardDeletedSubs = append(r.hardDeletedSubs, submissionID)
	return nil
}

type fakeLinkRepo struct {
	created  []*form.AccessLink
	orderIDs map[uuid.UUID]string
}

func (r *fakeLinkRepo) Create(_ context.Context, _ repository.DBTX, l *form.AccessLink) error {
	r.created = append(r.created, l)
	return nil
}

func (r *fakeLinkRepo) FindByToken(_ context.Context, token string) (*form.AccessLink, error) {
	for _, l := range r.created {
		if l.Token == token {
			return l, nil
		}
	}
	return nil, notFoundErr()
}

func (r *fakeLinkRepo) FindByID(_ context.Context, id uuid.UUID) (*form.AccessLink, error) {
	for _, l := range r.created {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, notFoundErr()
}

func (r *fakeLinkRepo) SetExternalOrderID(_ context.Context, _ repository.DBTX, id uuid.UUID, orderID string) error {
	if r.orderIDs == nil {
		r.orderIDs = map[uuid.UUID]string{}
	}
	r.orderIDs[id] = orderID
	return nil
}

func (r *fakeLinkRepo) Deactivate(context.Context, uuid.UUID) error { return nil }

type blobStoreFake struct {
	saved              []string
	saveErr            error
	removed            []string
	removedSubmissions []uuid.UUID
}

func (s *blobStoreFake) Save(_ uuid.UUID, _ document.Type, storageName string, _ io.Reader) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, storageName)
	return nil
}

func (s *blobStoreFake) Remove(_ uuid.UUID, _ document.Type, storageName string) error {
	s.removed = append(s.removed, storageName)
	return nil
}

func (s *blobStoreFake) RemoveSubmission(id uuid.UUID) error {
	s.removedSubmissions = append(s.removedSubmissions, id)
	return nil
}

type fakeGateway struct {
	req    *external.OrderRequest
	result *external.OrderResult
	err    error
}

func (g *fakeGateway) CreateOrder(_ context.Context, req external.OrderRequest) (*external.OrderResult, error) {
	g.req = &req
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

func (g *fakeGateway) UpdateOrder(_ context.Context, _ string, req external.OrderRequest) (*external.OrderResult, error) {
	return g.CreateOrder(context.Background(), req)
}

// ---- harness ----

type workflowFixture struct {
	forms       *fakeFormRepo
	submissions *fakeSubmissionRepo
	documents   *fakeDocRepo
	links       *fakeLinkRepo
	store       *blobStoreFake
	gateway     *fakeGateway
	db          *fakeDB
	clock       *clock.MockClock
	commands    commands.FormCommands
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	fx := &workflowFixture{
		forms:       newFakeFormRepo(),
		submissions: &fakeSubmissionRepo{},
		documents:   &fakeDocRepo{},
		links:       &fakeLinkRepo{},
		store:       &blobStoreFake{},
		gateway:     &fakeGateway{result: &external.OrderResult{OrderID: "ORD-1", Status: "created", Raw: []byte(`{}`)}},
		db:          &fakeDB{},
		clock:       clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
	}
	docCleanup := commands.NewDocumentCommands(fx.documents, fx.store, fx.db, fx.clock, slog.Default())
	fx.commands = commands.NewFormCommands(
		fx.forms, fx.submissions, fx.documents, fx.links, fx.store, fx.gateway,
		docCleanup, fx.db, fx.clock, slog.Default(),
		commands.FormWorkflowConfig{
			TTL:            24 * time.Hour,
			MaxFileSize:    1 << 20,
			BaseURL:        "http://localhost:8080",
			OrganizationID: 305,
		},
	)
	return fx
}

func validInput() commands.CreateFormInput {
	return commands.CreateFormInput{
		ClientID:  "4411",
		PolicyID:  "900210",
		ServiceID: 1,
		Name:      "Ana Perez",
		DNI:       "12345678",
		Email:     "ana@example.com",
	}
}

func validFiles() []commands.FileUpload {
	return []commands.FileUpload{
		{Type: document.TypeInvoice, OriginalName: "invoice.pdf", MIMEType: "application/pdf", Content: []byte("inv")},
		{Type: document.TypePrescription, OriginalName: "rx.jpg", MIMEType: "image/jpeg", Content: []byte("rx")},
	}
}

// ---- tests ----

func TestFormCommands_CreateForm(t *testing.T) {
	ctx := context.Background()

	t.Run("creates new form", func(t *testing.T) {
		fx := newWorkflowFixture(t)
		res, err := fx.commands.CreateForm(ctx, validInput())
		require.NoError(t, err)
		assert.True(t, res.WasCreated)
		assert.Equal(t, "pending", res.Form.Status)
		assert.NotEmpty(t, res.Form.Token)
		assert.Equal(t, fx.clock.Now().Add(24*time.Hour), res.Form.ExpiresAt)
	})

	t.Run("replays existing form for used idempotency key", func(t *testing.T) {
		fx := newWorkflowFixture(t)
		key := uuid.New()
		in := validInput()
		in.IdempotencyKey = &key

		first, err := fx.commands.CreateForm(ctx, in)
		require.NoError(t, err)
		require.True(t, first.WasCreated)

		second, err := fx.commands.CreateForm(ctx, in)
		require.NoError(t, err)
		assert.False(t, second.WasCreated)
		assert.Equal(t, first.Form.ID, second.Form.ID)
		assert.Len(t, fx.forms.created, 1)
	})

	t.Run("duplicate key race resolves to winner", func(t *testing.T) {
		fx := newWorkflowFixture(t)
		key := uuid.New()
		in := validInput()
		in.IdempotencyKey = &key

		// The competing request won between our lookup and insert.
		winner, err := form.NewForm(form.Attributes{
			ClientID: "4411", PolicyID: "900210", Name: "Ana Perez",
			DNI: "12345678", Email: "ana@example.com",
		}, &key, fx.clock.Now(), time.Hour)
		require.NoError(t, err)
		fx.forms.createErr = infra.WrapRepoErr("dup", &pgconn.PgError{Code: "23505"})
		fx.forms.byKey[key] = winner
		fx.forms.missFirstKeyLookup = true

		res, err := fx.commands.CreateForm(ctx, in)
		require.NoError(t, err)
		assert.False(t, res.WasCreated)
		assert.Equal(t, winner.ID(), res.Form.ID)
	})

	t.Run("invalid attributes rejected", func(t *testing.T) {
		fx := newWorkflowFixture(t)
		in := validInput()
		in.Email = "nope"
		_, err := fx.commands.CreateForm(ctx, in)
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})
}

func TestFormCommands_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown token", func(t *testing.T) {
		fx := newWorkflowFixture(t)
		_, err := fx.commands.Validate(ctx, "missing")
		assert.ErrorIs(t, err, queries.ErrFormNotFound)
	})

	t.Run("pending form passes", func(t *testing.T) {
		fx := newWorkflowFixture(t)
		res, err := fx.commands.CreateForm(ctx, validInput())
		require.NoError(t, err)

		f, err := fx.commands.Validate(ctx, res.Form.Token)
		require.NoError(t, err)
		assert.Equal(t, res.Form.ID, f.ID())
	})

	t.Run("expired form persists transition", func(t *testing.T) {
		fx := newWorkflowFixture(t)
		res, err := fx.commands.CreateForm(ctx, validInput())
		require.NoError(t, err)

		fx.clock.Add(25 * time.Hour)
		_, err = fx.commands.Validate(ctx, res.Form.Token)
		assert.ErrorIs(t, err, commands.ErrFormExpired)
		assert.Equal(t, []uuid.UUID{res.Form.ID}, fx.forms.expired)
	})

	t.Run("submitted form rejected", func(t *testing.T) {
		fx := newWorkflowFixture(t)
		res, err := fx.commands.CreateForm(ctx, validInput())
		require.NoError(t, err)

		_, err = fx.commands.Submit(ctx, res.Form.Token, commands.SubmitInput{Files: validFiles()})
		require.NoError(t, err)

		_, err = fx.commands.Validate(ctx, res.Form.Token)
		assert.ErrorIs(t, err, commands.ErrFormAlreadySubmitted)
	})
}

func TestFormCommands_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		fx := newWorkflowFixture(t)
		res, err := fx.commands.CreateForm(ctx, validInput())
		require.NoError(t, err)

		files := append(validFiles(), commands.FileUpload{
			Type: document.TypeDiagnosis, OriginalName: "dx.png", MIMEType: "image/png", Content: []byte("dx"),
		})
		out, err := fx.commands.Submit(ctx, res.Form.Token, commands.SubmitInput{Files: files})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, out.SubmissionID)
		assert.NotEmpty(t, out.AccessToken)
		assert.Equal(t, "ORD-1", out.OrderID)

		require.Len(t, fx.links.created, 1)
		assert.Equal(t, out.AccessToken, fx.links.created[0].Token)
		assert.Nil(t, fx.links.created[0].ExpiresAt)

		assert.Len(t, fx.documents.created, 3)
		assert.Len(t, fx.store.saved, 3)

		// Payload carries the invoice download URL and view URLs for the rest.
		require.NotNil(t, fx.gateway.req)
		assert.Contains(t, fx.gateway.req.InvoiceURL, out.AccessToken)
		assert.Contains(t, fx.gateway.req.InvoiceURL, "invoice/download")
		require.Len(t, fx.gateway.req.DocumentURLs, 2)
		for _, u := range fx.gateway.req.DocumentURLs {
			assert.True(t, strings.HasSuffix(u, "/view"), u)
		}

		assert.Equal(t, []uuid.UUID{res.Form.ID}, fx.forms.submitted)
		assert.Equal(t, "ORD-1", fx.forms.orderIDs[res.Form.ID])
		assert.Equal(t, "ORD-1", fx.links.orderIDs[fx.links.created[0].ID])
		assert.Equal(t, "created", fx.submissions.results[out.SubmissionID])
		require.Len(t, fx.db.txs, 1)
		assert.True(t, fx.db.txs[0].committed)
	})

	t.Run("contact overrides applied", func(t *testing.T) {
		fx := newWorkflowFixture(t)
		res, err := fx.commands.CreateForm(ctx, validInput())
		require.NoError(t, err)

		cbu := "2850590940090418135201"
		email := "new@example.com"
		_, err = fx.commands.Submit(ctx, res.Form.Token, commands.SubmitInput{
			CBU: &cbu, Email: &email, Files: validFiles(),
		})
		require.NoError(t, err)

		sub := fx.submissions.created[0]
		assert.Equal(t, &cbu, sub.CBU)
		assert.Equal(t, email, sub.Email)
	})

	t.Run("document set validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func([]commands.FileUpload) []commands.FileUpload
			errIs  error
		}{
			{"missing invoice", func(fs []commands.FileUpload) []commands.FileUpload {
				return fs[1:]
			}, commands.ErrMissingDocument},
			{"missing prescription", func(fs []commands.FileUpload) []commands.FileUpload {
				return fs[:1]
			}, commands.ErrMissingDocument},
			{"duplicate invoice", func(fs []commands.FileUpload) []commands.FileUpload {
				return append(fs, fs[0])
			}, commands.ErrTooManyDocuments},
			{"four diagnosis files", func(fs []commands.FileUpload) []commands.FileUpload {
				for i := 0; i < 4; i++ {
					fs = append(fs, commands.FileUpload{
						Type: document.TypeDiagnosis, OriginalName: "d.png",
						MIMEType: "image/png", Content: []byte("d"),
					})
				}
				return fs
			}, commands.ErrTooManyDocuments},
			{"disallowed mime type", func(fs []commands.FileUpload) []commands.FileUpload {
				fs[0].MIMEType = "application/zip"
				return fs
			}, commands.ErrUnsupportedFileType},
			{"empty file", func(fs []commands.FileUpload) []commands.FileUpload {
				fs[0].Content = nil
				return fs
			}, commands.ErrEmptyFile},
			{"oversize file", func(fs []commands.FileUpload) []commands.FileUpload {
				fs[0].Content = make([]byte, (1<<20)+1)
				return fs
			}, commands.ErrFileTooLarge},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				fx := newWorkflowFixture(t)
				res, err := fx.commands.CreateForm(ctx, validInput())
				require.NoError(t, err)

				_, err = fx.commands.Submit(ctx, res.Form.Token,
					commands.SubmitInput{Files: tc.mutate(validFiles())})
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})

	t.Run("external failure rolls back and cleans up uploads", func(t *testing.T) {
		fx := newWorkflowFixture(t)
		res, err := fx.commands.CreateForm(ctx, validInput())
		require.NoError(t, err)

		fx.gateway.err = errs.Mark(errs.New("boom"), external.ErrServerFailure)
		_, err = fx.commands.Submit(ctx, res.Form.Token, commands.SubmitInput{Files: validFiles()})
		assert.ErrorIs(t, err, commands.ErrExternalAPI)

		// First tx is the submission pipeline, second the cleanup pass.
		require.Len(t, fx.db.txs, 2)
		assert.True(t, fx.db.txs[0].rolledBack)
		assert.False(t, fx.db.txs[0].committed)
		assert.True(t, fx.db.txs[1].committed)

		subID := fx.submissions.created[0].ID
		assert.Equal(t, []uuid.UUID{subID}, fx.documents.hardDeletedSubs)
		assert.Equal(t, []uuid.UUID{subID}, fx.store.removedSubmissions)
		assert.Empty(t, fx.forms.submitted)
	})

	t.Run("open breaker maps to service unavailable", func(t *testing.T) {
		fx := newWorkflowFixture(t)
		res, err := fx.commands.CreateForm(ctx, validInput())
		require.NoError(t, err)

		fx.gateway.err = breaker.ErrOpen
		_, err = fx.commands.Submit(ctx, res.Form.Token, commands.SubmitInput{Files: validFiles()})
		assert.ErrorIs(t, err, commands.ErrServiceUnavailable)
		assert.NotErrorIs(t, err, commands.ErrExternalAPI)
	})
}
