package commands

import (
	"context"
	"io"
	"time"

	"reimburse-api/internal/domain/audit"
	"reimburse-api/internal/domain/document"
	"reimburse-api/internal/domain/form"
	"reimburse-api/internal/domain/operator"
	"reimburse-api/internal/infra/external"
	"reimburse-api/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DB is the pool surface commands need: plain queries plus transactions.
// Satisfied by *pgxpool.Pool.
type DB interface {
	repository.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Write-side ports. Implemented by internal/infra; repository methods taking
// a repository.DBTX participate in the caller's transaction.

type FormRepository interface {
	Create(ctx context.Context, tx repository.DBTX, f *form.Form) error
	FindByToken(ctx context.Context, token string) (*form.Form, error)
	FindByIdempotencyKey(ctx context.Context, key uuid.UUID) (*form.Form, error)
	MarkExpired(ctx context.Context, id uuid.UUID) error
	MarkSubmitted(ctx context.Context, tx repository.DBTX, id uuid.UUID, submittedAt time.Time) error
	SetExternalOrderID(ctx context.Context, tx repository.DBTX, id uuid.UUID, orderID string) error
}

type SubmissionRepository interface {
	Create(ctx context.Context, tx repository.DBTX, s *form.Submission) error
	FindByID(ctx context.Context, id uuid.UUID) (*form.Submission, error)
	SetExternalResult(ctx context.Context, tx repository.DBTX, id uuid.UUID, response []byte, status string) error
}

type DocumentRepository interface {
	Create(ctx context.Context, tx repository.DBTX, d *document.Document) error
	FindByID(ctx context.Context, id uuid.UUID, withDeleted bool) (*document.Document, error)
	ListBySubmission(ctx context.Context, submissionID uuid.UUID, withDeleted bool) ([]*document.Document, error)
	SoftDelete(ctx context.Context, tx repository.DBTX, id uuid.UUID, now time.Time) error
	HardDeleteBySubmission(ctx context.Context, tx repository.DBTX, submissionID uuid.UUID) error
}

type AccessLinkRepository interface {
	Create(ctx context.Context, tx repository.DBTX, l *form.AccessLink) error
	FindByToken(ctx context.Context, token string) (*form.AccessLink, error)
	FindByID(ctx context.Context, id uuid.UUID) (*form.AccessLink, error)
	SetExternalOrderID(ctx context.Context, tx repository.DBTX, id uuid.UUID, orderID string) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type AuditWriter interface {
	Insert(ctx context.Context, e *audit.Entry) error
}

type ACLStore interface {
	HasRolePermission(ctx context.Context, userID uuid.UUID, permission string) (bool, error)
	HasResourcePermission(ctx context.Context, userID uuid.UUID, permission, resourceType, resourceID string) (bool, error)
	CreateRole(ctx context.Context, name string) (uuid.UUID, error)
	CreatePermission(ctx context.Context, name string) (uuid.UUID, error)
	AddPermissionToRole(ctx context.Context, roleName, permissionName string) error
	AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error
	GrantResourcePermission(ctx context.Context, userID uuid.UUID, permission, resourceType, resourceID string) error
	RevokeResourcePermission(ctx context.Context, userID uuid.UUID, permission, resourceType, resourceID string) error
	ListResourceGrants(ctx context.Context, userID uuid.UUID) ([]repository.ResourceGrant, error)
}

type OperatorRepository interface {
	FindByEmail(ctx context.Context, email string) (*operator.Operator, error)
	FindByID(ctx context.Context, id uuid.UUID) (*operator.Operator, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// BlobStore is the filesystem side of document handling.
type BlobStore interface {
	Save(submissionID uuid.UUID, docType document.Type, storageName string, r io.Reader) error
	Remove(submissionID uuid.UUID, docType document.Type, storageName string) error
	RemoveSubmission(submissionID uuid.UUID) error
}

// OrderGateway is the external order system behind the circuit breaker.
type OrderGateway interface {
	CreateOrder(ctx context.Context, req external.OrderRequest) (*external.OrderResult, error)
	UpdateOrder(ctx context.Context, orderID string, req external.OrderRequest) (*external.OrderResult, error)
}

// IdentityVerifier exchanges an identity-provider token for a verified email.
type IdentityVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}
