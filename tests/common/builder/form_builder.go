//go:build unit || e2e

package builder

import (
	"time"

	"reimburse-api/internal/domain/form"
	reqdto "reimburse-api/internal/handler/dto/request"
	"reimburse-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type FormBuilder struct {
	ID        uuid.UUID
	Token     string
	ClientID  string
	PolicyID  string
	ServiceID int
	Name      string
	DNI       string
	CBU       *string
	CUIT      *string
	Email     string
	Status    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func NewFormBuilder() *FormBuilder {
	now := time.Now()
	return &FormBuilder{
		ID:        uuid.New(),
		Token:     form.NewToken(),
		ClientID:  "CL-001234",
		PolicyID:  "POL-5678",
		ServiceID: 42,
		Name:      "Maria Gonzalez",
		DNI:       "30123456",
		Email:     "maria@example.com",
		Status:    string(form.StatusPending),
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

// Build methods

func (b *FormBuilder) BuildCreateRequestDTO() reqdto.CreateFormRequest {
	return reqdto.CreateFormRequest{
		ClientID:  b.ClientID,
		PolicyID:  b.PolicyID,
		ServiceID: b.ServiceID,
		Name:      b.Name,
		DNI:       b.DNI,
		CBU:       b.CBU,
		CUIT:      b.CUIT,
		Email:     b.Email,
	}
}

// BuildCreateRequestMap returns the request as a mutable map for validation
// boundary tests.
func (b *FormBuilder) BuildCreateRequestMap() map[string]any {
	return map[string]any{
		"client_id":  b.ClientID,
		"policy_id":  b.PolicyID,
		"service_id": b.ServiceID,
		"name":       b.Name,
		"dni":        b.DNI,
		"email":      b.Email,
	}
}

func (b *FormBuilder) BuildView() *queries.FormView {
	return &queries.FormView{
		ID:        b.ID,
		Token:     b.Token,
		ClientID:  b.ClientID,
		PolicyID:  b.PolicyID,
		ServiceID: b.ServiceID,
		Name:      b.Name,
		DNI:       b.DNI,
		CBU:       b.CBU,
		CUIT:      b.CUIT,
		Email:     b.Email,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		ExpiresAt: b.ExpiresAt,
	}
}

func (b *FormBuilder) BuildStatusView() *queries.FormStatusView {
	return &queries.FormStatusView{
		Status:    b.Status,
		ExpiresAt: b.ExpiresAt,
	}
}

func (b *FormBuilder) BuildAccessLink(submissionID uuid.UUID) *form.AccessLink {
	return &form.AccessLink{
		ID:           uuid.New(),
		SubmissionID: submissionID,
		Token:        form.NewToken(),
		IsActive:     true,
		CreatedAt:    b.CreatedAt,
	}
}

func (b *FormBuilder) BuildSubmissionView(submissionID uuid.UUID) *queries.SubmissionView {
	return &queries.SubmissionView{
		ID:          submissionID,
		FormID:      b.ID,
		Email:       b.Email,
		SubmittedAt: b.CreatedAt,
		Documents: []*queries.DocumentView{
			{
				ID:          uuid.New(),
				Type:        "invoice",
				DisplayName: "invoice.pdf",
				Size:        2048,
				MIMEType:    "application/pdf",
				UploadedAt:  b.CreatedAt,
			},
		},
	}
}

// Fluent builder methods

func (b *FormBuilder) WithStatus(status string) *FormBuilder {
	b.Status = status
	return b
}

func (b *FormBuilder) WithToken(token string) *FormBuilder {
	b.Token = token
	return b
}

func (b *FormBuilder) WithCBU(cbu string) *FormBuilder {
	b.CBU = &cbu
	return b
}

func (b *FormBuilder) WithEmail(email string) *FormBuilder {
	b.Email = email
	return b
}

func (b *FormBuilder) AsExpired() *FormBuilder {
	b.Status = string(form.StatusExpired)
	b.ExpiresAt = b.CreatedAt.Add(-time.Hour)
	return b
}
