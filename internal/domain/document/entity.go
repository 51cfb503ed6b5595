package document

import (
	"time"

	"github.com/google/uuid"
)

// Document is the metadata record of one stored upload. StorageName is the
// opaque on-disk name; DisplayName is what gets shown (and offered as the
// download filename) to reviewers.
type Document struct {
	ID           uuid.UUID
	SubmissionID uuid.UUID
	Type         Type
	StorageName  string
	DisplayName  string
	Size         int64
	MIMEType     string
	UploadedAt   time.Time
	IsDeleted    bool
	DeletedAt    *time.Time
}

func NewDocument(submissionID uuid.UUID, docType Type, originalName, mimeType string, size int64, now time.Time) *Document {
	return &Document{
		ID:           uuid.New(),
		SubmissionID: submissionID,
		Type:         docType,
		StorageName:  NewStorageName(originalName),
		DisplayName:  SanitizeDisplayName(originalName),
		Size:         size,
		MIMEType:     mimeType,
		UploadedAt:   now,
	}
}
