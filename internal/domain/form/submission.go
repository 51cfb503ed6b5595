package form

import (
	"time"

	"github.com/google/uuid"
)

// Submission is the immutable record created when an applicant completes a
// form. Plain record: all mutation happens through the workflow commands.
type Submission struct {
	ID               uuid.UUID
	FormID           uuid.UUID
	CBU              *string
	CUIT             *string
	Email            string
	SubmittedAt      time.Time
	ExternalResponse []byte // raw upstream response, stored as jsonb
	ExternalStatus   *string
}

// NewSubmission applies the optional overrides on top of the form's original
// contact data.
func NewSubmission(f *Form, cbu, cuit, email *string, now time.Time) *Submission {
	attrs := f.Attrs()
	s := &Submission{
		ID:          uuid.New(),
		FormID:      f.ID(),
		CBU:         attrs.CBU,
		CUIT:        attrs.CUIT,
		Email:       attrs.Email,
		SubmittedAt: now,
	}
	if cbu != nil && *cbu != "" {
		s.CBU = cbu
	}
	if cuit != nil && *cuit != "" {
		s.CUIT = cuit
	}
	if email != nil && *email != "" {
		s.Email = *email
	}
	return s
}
