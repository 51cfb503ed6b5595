package form

import (
	"time"

	"github.com/google/uuid"
)

// AccessLink grants document review access to one submission. A nil ExpiresAt
// means the link never expires; revocation goes through IsActive.
type AccessLink struct {
	ID              uuid.UUID
	SubmissionID    uuid.UUID
	Token           string
	ExternalOrderID *string
	CreatedBy       *uuid.UUID // nil when issued by the system
	ExpiresAt       *time.Time
	IsActive        bool
	CreatedAt       time.Time
}

func NewAccessLink(submissionID uuid.UUID, createdBy *uuid.UUID, expiresAt *time.Time, now time.Time) *AccessLink {
	return &AccessLink{
		ID:           uuid.New(),
		SubmissionID: submissionID,
		Token:        NewToken(),
		CreatedBy:    createdBy,
		ExpiresAt:    expiresAt,
		IsActive:     true,
		CreatedAt:    now,
	}
}

func (l *AccessLink) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}
