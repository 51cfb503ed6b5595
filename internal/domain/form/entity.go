package form

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingClientID = errors.New("client id is required")
	ErrMissingPolicyID = errors.New("policy id is required")
	ErrMissingName     = errors.New("applicant name is required")
	ErrMissingDNI      = errors.New("applicant dni is required")
	ErrInvalidEmail    = errors.New("invalid email address")
)

// Attributes carries the applicant data a form is created with.
type Attributes struct {
	ClientID  string
	PolicyID  string
	ServiceID int
	Name      string
	DNI       string
	CBU       *string
	CUIT      *string
	Email     string
}

// Form is the aggregate root of the reimbursement workflow. It is mutated
// only through the form commands; status moves pending -> submitted exactly
// once, or pending -> expired when read past its expiry.
type Form struct {
	id              uuid.UUID
	token           string
	attrs           Attributes
	idempotencyKey  *uuid.UUID
	externalOrderID *string
	status          Status
	isSubmitted     bool
	createdAt       time.Time
	expiresAt       time.Time
	submittedAt     *time.Time
}

func NewForm(attrs Attributes, idempotencyKey *uuid.UUID, now time.Time, ttl time.Duration) (*Form, error) {
	if err := validateAttributes(attrs); err != nil {
		return nil, err
	}

	return &Form{
		id:             uuid.New(),
		token:          NewToken(),
		attrs:          attrs,
		idempotencyKey: idempotencyKey,
		status:         StatusPending,
		createdAt:      now,
		expiresAt:      now.Add(ttl),
	}, nil
}

func validateAttributes(attrs Attributes) error {
	switch {
	case attrs.ClientID == "":
		return ErrMissingClientID
	case attrs.PolicyID == "":
		return ErrMissingPolicyID
	case attrs.Name == "":
		return ErrMissingName
	case attrs.DNI == "":
		return ErrMissingDNI
	}
	if attrs.Email == "" || !strings.Contains(attrs.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// NewToken returns a URL-safe random form token (256 bits).
func NewToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic("form: rand.Read: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}

func ReconstructForm(
	id uuid.UUID,
	token string,
	attrs Attributes,
	idempotencyKey *uuid.UUID,
	externalOrderID *string,
	status Status,
	isSubmitted bool,
	createdAt, expiresAt time.Time,
	submittedAt *time.Time,
) *Form {
	return &Form{
		id:              id,
		token:           token,
		attrs:           attrs,
		idempotencyKey:  idempotencyKey,
		externalOrderID: externalOrderID,
		status:          status,
		isSubmitted:     isSubmitted,
		createdAt:       createdAt,
		expiresAt:       expiresAt,
		submittedAt:     submittedAt,
	}
}

func (f *Form) ID() uuid.UUID              { return f.id }
func (f *Form) Token() string              { return f.token }
func (f *Form) Attrs() Attributes          { return f.attrs }
func (f *Form) IdempotencyKey() *uuid.UUID { return f.idempotencyKey }
func (f *Form) ExternalOrderID() *string   { return f.externalOrderID }
func (f *Form) Status() Status             { return f.status }
func (f *Form) IsSubmitted() bool          { return f.isSubmitted }
func (f *Form) CreatedAt() time.Time       { return f.createdAt }
func (f *Form) ExpiresAt() time.Time       { return f.expiresAt }
func (f *Form) SubmittedAt() *time.Time    { return f.submittedAt }

func (f *Form) IsExpired(now time.Time) bool {
	return f.expiresAt.Before(now)
}
