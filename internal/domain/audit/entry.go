package audit

import (
	"time"

	"github.com/google/uuid"
)

type ActorType string

const (
	ActorOperator ActorType = "operator"
	ActorAPIKey   ActorType = "api_key"
	ActorSystem   ActorType = "system"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Entry is one append-only audit record. Payloads are pre-marshaled json.
type Entry struct {
	ID              uuid.UUID
	ActionType      string
	ActorType       ActorType
	ActorID         *string
	ResourceType    *string
	ResourceID      *string
	IP              string
	UserAgent       string
	RequestPayload  []byte
	ResponsePayload []byte
	Status          Status
	ErrorMessage    *string
	RequestID       string
	CreatedAt       time.Time
}

// SearchFilter narrows an audit log query. Zero values mean "no constraint".
type SearchFilter struct {
	ActionType   string
	ActorType    string
	ActorID      string
	ResourceType string
	ResourceID   string
	Status       string
	RequestID    string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}
