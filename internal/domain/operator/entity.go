package operator

import (
	"time"

	"github.com/google/uuid"
)

// Operator is a staff account. PasswordHash is nil for accounts that only
// authenticate through the identity provider.
type Operator struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash *string
	IsSuperuser  bool
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
}
