package queries

import (
	"context"
	"io"

	"reimburse-api/internal/domain/document"
	"reimburse-api/internal/domain/form"
	"reimburse-api/internal/infra"
	"reimburse-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrDocumentNotFound = errs.New("document not found")

type SubmissionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*form.Submission, error)
}

type DocumentReader interface {
	FindByID(ctx context.Context, id uuid.UUID, withDeleted bool) (*document.Document, error)
	ListBySubmission(ctx context.Context, submissionID uuid.UUID, withDeleted bool) ([]*document.Document, error)
}

type DocumentOpener interface {
	Open(submissionID uuid.UUID, docType document.Type, storageName string) (io.ReadSeekCloser, error)
}

// DocumentContent is a stored document ready for streaming. The caller closes
// Body.
type DocumentContent struct {
	Document *DocumentView
	Body     io.ReadSeekCloser
}

type SubmissionQueries interface {
	GetSubmission(ctx context.Context, submissionID uuid.UUID) (*SubmissionView, error)
	OpenDocument(ctx context.Context, submissionID, documentID uuid.UUID) (*DocumentContent, error)
}

type submissionQueriesImpl struct {
	submissions SubmissionReader
	documents   DocumentReader
	store       DocumentOpener
}

func NewSubmissionQueries(submissions SubmissionReader, documents DocumentReader, store DocumentOpener) SubmissionQueries {
	return &submissionQueriesImpl{submissions: submissions, documents: documents, store: store}
}

func (q *submissionQueriesImpl) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*SubmissionView, error) {
	sub, err := q.submissions.FindByID(ctx, submissionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrDocumentNotFound)
		}
		return nil, err
	}

	docs, err := q.documents.ListBySubmission(ctx, submissionID, false)
	if err != nil {
		return nil, err
	}

	view := &SubmissionView{
		ID:          sub.ID,
		FormID:      sub.FormID,
		CBU:         sub.CBU,
		CUIT:        sub.CUIT,
		Email:       sub.Email,
		SubmittedAt: sub.SubmittedAt,
		Documents:   make([]*DocumentView, 0, len(docs)),
	}
	for _, d := range docs {
		view.Documents = append(view.Documents, DocumentToView(d))
	}
	return view, nil
}

func (q *submissionQueriesImpl) OpenDocument(ctx context.Context, submissionID, documentID uuid.UUID) (*DocumentContent, error) {
	doc, err := q.documents.FindByID(ctx, documentID, false)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrDocumentNotFound)
		}
		return nil, err
	}
	// The access token only grants its own submission.
	if doc.SubmissionID != submissionID {
		return nil, ErrDocumentNotFound
	}

	body, err := q.store.Open(doc.SubmissionID, doc.Type, doc.StorageName)
	if err != nil {
		return nil, errs.Wrap(err, "failed to open stored document")
	}
	return &DocumentContent{Document: DocumentToView(doc), Body: body}, nil
}

func DocumentToView(d *document.Document) *DocumentView {
	return &DocumentView{
		ID:          d.ID,
		Type:        d.Type.String(),
		DisplayName: d.DisplayName,
		Size:        d.Size,
		MIMEType:    d.MIMEType,
		UploadedAt:  d.UploadedAt,
	}
}
