package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type FormView struct {
	ID              uuid.UUID  `json:"id"`
	Token           string     `json:"token"`
	ClientID        string     `json:"client_id"`
	PolicyID        string     `json:"policy_id"`
	ServiceID       int        `json:"service_id"`
	Name            string     `json:"name"`
	DNI             string     `json:"dni"`
	CBU             *string    `json:"cbu,omitempty"`
	CUIT            *string    `json:"cuit,omitempty"`
	Email           string     `json:"email"`
	Status          string     `json:"status"`
	ExternalOrderID *string    `json:"external_order_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpiresAt       time.Time  `json:"expires_at"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
}

type FormStatusView struct {
	Status      string     `json:"status"`
	ExpiresAt   time.Time  `json:"expires_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

type DocumentView struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	DisplayName string    `json:"display_name"`
	Size        int64     `json:"size"`
	MIMEType    string    `json:"mime_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type SubmissionView struct {
	ID              uuid.UUID       `json:"id"`
	FormID          uuid.UUID       `json:"form_id"`
	CBU             *string         `json:"cbu,omitempty"`
	CUIT            *string         `json:"cuit,omitempty"`
	Email           string          `json:"email"`
	SubmittedAt     time.Time       `json:"submitted_at"`
	ExternalOrderID *string         `json:"external_order_id,omitempty"`
	Documents       []*DocumentView `json:"documents"`
}

type AuditLogView struct {
	ID           uuid.UUID `json:"id"`
	ActionType   string    `json:"action_type"`
	ActorType    string    `json:"actor_type"`
	ActorID      *string   `json:"actor_id,omitempty"`
	ResourceType *string   `json:"resource_type,omitempty"`
	ResourceID   *string   `json:"resource_id,omitempty"`
	IP           string    `json:"ip"`
	UserAgent    string    `json:"user_agent"`
	Status       string    `json:"status"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	RequestID    string    `json:"request_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type OperatorView struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	IsSuperuser bool       `json:"is_superuser"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}
