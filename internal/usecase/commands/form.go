package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"reimburse-api/internal/domain/document"
	"reimburse-api/internal/domain/form"
	"reimburse-api/internal/infra"
	"reimburse-api/internal/infra/external"
	"reimburse-api/internal/infra/repository"
	"reimburse-api/internal/pkg/breaker"
	"reimburse-api/internal/pkg/clock"
	"reimburse-api/internal/pkg/errs"
	"reimburse-api/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrFormAlreadySubmitted    = errs.New("form already submitted")
	ErrFormExpired             = errs.New("form expired")
	ErrMissingDocument         = errs.New("required document missing")
	ErrTooManyDocuments        = errs.New("too many documents")
	ErrUnsupportedFileType     = errs.New("unsupported file type")
	ErrFileTooLarge            = errs.New("file too large")
	ErrEmptyFile               = errs.New("empty file")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDocumentStorage         = errs.New("document storage failed")
	ErrExternalAPI             = errs.New("external order api failed")
	ErrServiceUnavailable      = errs.New("external order api unavailable")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const maxDiagnosisDocuments = 3

type CreateFormInput struct {
	ClientID       string
	PolicyID       string
	ServiceID      int
	Name           string
	DNI            string
	CBU            *string
	CUIT           *string
	Email          string
	IdempotencyKey *uuid.UUID
}

type CreateFormResult struct {
	Form       *queries.FormView
	WasCreated bool
}

type FileUpload struct {
	Type         document.Type
	OriginalName string
	MIMEType     string
	Content      []byte
}

type SubmitInput struct {
	CBU   *string
	CUIT  *string
	Email *string
	Files []FileUpload
}

type SubmitResult struct {
	SubmissionID uuid.UUID
	AccessToken  string
	OrderID      string
}

// FormWorkflowConfig carries the config slices the workflow needs; assembled
// in bootstrap from the main Config.
type FormWorkflowConfig struct {
	TTL            time.Duration
	MaxFileSize    int64
	BaseURL        string
	OrganizationID int
}

type FormCommands interface {
	// CreateForm creates a form, or replays the existing one when the
	// idempotency key was already used by a live form.
	CreateForm(ctx context.Context, in CreateFormInput) (*CreateFormResult, error)
	// Validate gates submission: pending and unexpired, or a distinct error.
	Validate(ctx context.Context, token string) (*form.Form, error)
	// Submit runs the whole submission pipeline: submission row, access
	// link, document uploads, external order sync. All DB writes share one
	// transaction; stored files are removed if anything fails.
	Submit(ctx context.Context, token string, in SubmitInput) (*SubmitResult, error)
}

type formCommandsImpl struct {
	forms       FormRepository
	submissions SubmissionRepository
	documents   DocumentRepository
	links       AccessLinkRepository
	store       BlobStore
	gateway     OrderGateway
	docCleanup  DocumentCommands
	db          DB
	clock       clock.Clock
	logger      *slog.Logger
	cfg         FormWorkflowConfig
}

func NewFormCommands(
	forms FormRepository,
	submissions SubmissionRepository,
	documents DocumentRepository,
	links AccessLinkRepository,
	store BlobStore,
	gateway OrderGateway,
	docCleanup DocumentCommands,
	db DB,
	clk clock.Clock,
	logger *slog.Logger,
	cfg FormWorkflowConfig,
) FormCommands {
	return &formCommandsImpl{
		forms:       forms,
		submissions: submissions,
		documents:   documents,
		links:       links,
		store:       store,
		gateway:     gateway,
		docCleanup:  docCleanup,
		db:          db,
		clock:       clk,
		logger:      logger,
		cfg:         cfg,
	}
}

func (f *formCommandsImpl) CreateForm(ctx context.Context, in CreateFormInput) (*CreateFormResult, error) {
	if in.IdempotencyKey != nil {
		existing, err := f.forms.FindByIdempotencyKey(ctx, *in.IdempotencyKey)
		if err == nil {
			return &CreateFormResult{Form: queries.FormToView(existing), WasCreated: false}, nil
		}
		if !infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	entity, err := form.NewForm(form.Attributes{
		ClientID:  in.ClientID,
		PolicyID:  in.PolicyID,
		ServiceID: in.ServiceID,
		Name:      in.Name,
		DNI:       in.DNI,
		CBU:       in.CBU,
		CUIT:      in.CUIT,
		Email:     in.Email,
	}, in.IdempotencyKey, f.clock.Now(), f.cfg.TTL)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := f.forms.Create(ctx, f.db, entity); err != nil {
		// Two requests raced on the same key: the unique index decided,
		// return the winner's form.
		if infra.IsKind(err, infra.KindDuplicateKey) && in.IdempotencyKey != nil {
			existing, findErr := f.forms.FindByIdempotencyKey(ctx, *in.IdempotencyKey)
			if findErr != nil {
				return nil, errs.Mark(findErr, ErrDatabaseOperationFailed)
			}
			return &CreateFormResult{Form: queries.FormToView(existing), WasCreated: false}, nil
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &CreateFormResult{Form: queries.FormToView(entity), WasCreated: true}, nil
}

func (f *formCommandsImpl) Validate(ctx context.Context, token string) (*form.Form, error) {
	entity, err := f.forms.FindByToken(ctx, token)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, queries.ErrFormNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	switch entity.Status() {
	case form.StatusSubmitted:
		return nil, ErrFormAlreadySubmitted
	case form.StatusExpired:
		return nil, ErrFormExpired
	}

	if entity.IsExpired(f.clock.Now()) {
		if err := f.forms.MarkExpired(ctx, entity.ID()); err != nil {
			f.logger.Warn("failed to persist form expiry", "form_id", entity.ID(), "error", err)
		}
		return nil, ErrFormExpired
	}
	return entity, nil
}

func (f *formCommandsImpl) Submit(ctx context.Context, token string, in SubmitInput) (*SubmitResult, error) {
	entity, err := f.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := f.validateFiles(in.Files); err != nil {
		return nil, err
	}

	now := f.clock.Now()
	sub := form.NewSubmission(entity, in.CBU, in.CUIT, in.Email, now)

	tx, err := f.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			f.logger.Warn("failed to rollback submission transaction", "error", rollbackErr)
		}
	}()

	if err := f.submissions.Create(ctx, tx, sub); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// The access link exists before any document does: review access must
	// never depend on upload success.
	link := form.NewAccessLink(sub.ID, nil, nil, now)
	if err := f.links.Create(ctx, tx, link); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	docs, err := f.storeDocuments(ctx, tx, sub.ID, in.Files)
	if err != nil {
		f.cleanupUploads(ctx, sub.ID)
		return nil, err
	}

	result, err := f.syncExternalOrder(ctx, entity, sub, link, docs)
	if err != nil {
		f.cleanupUploads(ctx, sub.ID)
		return nil, err
	}

	if err := f.forms.MarkSubmitted(ctx, tx, entity.ID(), now); err != nil {
		f.cleanupUploads(ctx, sub.ID)
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if result.OrderID != "" {
		if err := f.forms.SetExternalOrderID(ctx, tx, entity.ID(), result.OrderID); err != nil {
			f.cleanupUploads(ctx, sub.ID)
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := f.links.SetExternalOrderID(ctx, tx, link.ID, result.OrderID); err != nil {
			f.cleanupUploads(ctx, sub.ID)
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	if err := f.submissions.SetExternalResult(ctx, tx, sub.ID, result.Raw, result.Status); err != nil {
		f.cleanupUploads(ctx, sub.ID)
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		f.cleanupUploads(ctx, sub.ID)
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	committed = true

	return &SubmitResult{
		SubmissionID: sub.ID,
		AccessToken:  link.Token,
		OrderID:      result.OrderID,
	}, nil
}

func (f *formCommandsImpl) validateFiles(files []FileUpload) error {
	counts := map[document.Type]int{}
	for _, file := range files {
		if !file.Type.IsValid() {
			return errs.Mark(fmt.Errorf("unknown document type %q", file.Type), ErrUnsupportedFileType)
		}
		if !document.MIMETypeAllowed(file.MIMEType) {
			return errs.Mark(fmt.Errorf("mime type %q not allowed", file.MIMEType), ErrUnsupportedFileType)
		}
		if len(file.Content) == 0 {
			return ErrEmptyFile
		}
		if int64(len(file.Content)) > f.cfg.MaxFileSize {
			return ErrFileTooLarge
		}
		counts[file.Type]++
	}

	if counts[document.TypeInvoice] != 1 {
		return errs.Mark(errs.New("exactly one invoice is required"), requiredDocErr(counts[document.TypeInvoice]))
	}
	if counts[document.TypePrescription] != 1 {
		return errs.Mark(errs.New("exactly one prescription is required"), requiredDocErr(counts[document.TypePrescription]))
	}
	if counts[document.TypeDiagnosis] > maxDiagnosisDocuments {
		return ErrTooManyDocuments
	}
	return nil
}

func requiredDocErr(count int) error {
	if count > 1 {
		return ErrTooManyDocuments
	}
	return ErrMissingDocument
}

func (f *formCommandsImpl) storeDocuments(ctx context.Context, tx repository.DBTX, submissionID uuid.UUID, files []FileUpload) ([]*document.Document, error) {
	docs := make([]*document.Document, 0, len(files))
	now := f.clock.Now()
	for _, file := range files {
		d := document.NewDocument(submissionID, file.Type, file.OriginalName, file.MIMEType, int64(len(file.Content)), now)
		if err := f.store.Save(submissionID, d.Type, d.StorageName, bytes.NewReader(file.Content)); err != nil {
			return nil, errs.Mark(err, ErrDocumentStorage)
		}
		if err := f.documents.Create(ctx, tx, d); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

func (f *formCommandsImpl) syncExternalOrder(ctx context.Context, entity *form.Form, sub *form.Submission, link *form.AccessLink, docs []*document.Document) (*external.OrderResult, error) {
	attrs := entity.Attrs()
	req := external.OrderRequest{
		OrganizationID: f.cfg.OrganizationID,
		ClientID:       attrs.ClientID,
		PolicyID:       attrs.PolicyID,
		ServiceID:      attrs.ServiceID,
		Name:           attrs.Name,
		DNI:            attrs.DNI,
		CBU:            sub.CBU,
		CUIT:           sub.CUIT,
		Email:          sub.Email,
	}
	for _, d := range docs {
		if d.Type == document.TypeInvoice {
			req.InvoiceURL = f.documentURL(link.Token, d.ID, "invoice/download")
		} else {
			req.DocumentURLs = append(req.DocumentURLs, f.documentURL(link.Token, d.ID, "view"))
		}
	}

	result, err := f.gateway.CreateOrder(ctx, req)
	if err != nil {
		if errors.Is(err, breaker.ErrOpen) {
			return nil, errs.Mark(err, ErrServiceUnavailable)
		}
		return nil, errs.Mark(err, ErrExternalAPI)
	}
	return result, nil
}

func (f *formCommandsImpl) documentURL(accessToken string, docID uuid.UUID, suffix string) string {
	return fmt.Sprintf("%s/api/v1/document-access/%s/documents/%s/%s", f.cfg.BaseURL, accessToken, docID, suffix)
}

// cleanupUploads runs the failed-upload cleanup after a broken pipeline.
// Rows inserted by the current transaction disappear with the rollback; the
// cleanup removes the stored files and any rows a previous attempt committed.
func (f *formCommandsImpl) cleanupUploads(ctx context.Context, submissionID uuid.UUID) {
	if err := f.docCleanup.CleanupFailedUploads(ctx, submissionID); err != nil {
		f.logger.Warn("failed to clean up submission uploads", "submission_id", submissionID, "error", err)
	}
}
