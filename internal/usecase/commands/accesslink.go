package commands

import (
	"context"
	"time"

	"reimburse-api/internal/domain/form"
	"reimburse-api/internal/infra"
	"reimburse-api/internal/pkg/clock"
	"reimburse-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrLinkInvalid = errs.New("access link invalid")
	ErrLinkExpired = errs.New("access link expired")
)

type AccessLinkCommands interface {
	// Issue creates a link for the submission. A nil ttl issues a permanent
	// link; revocation is still possible through Deactivate.
	Issue(ctx context.Context, submissionID uuid.UUID, createdBy *uuid.UUID, ttl *time.Duration) (*form.AccessLink, error)
	Validate(ctx context.Context, token string) (*form.AccessLink, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type accessLinkCommandsImpl struct {
	links AccessLinkRepository
	db    DB
	clock clock.Clock
}

func NewAccessLinkCommands(links AccessLinkRepository, db DB, clk clock.Clock) AccessLinkCommands {
	return &accessLinkCommandsImpl{links: links, db: db, clock: clk}
}

func (a *accessLinkCommandsImpl) Issue(ctx context.Context, submissionID uuid.UUID, createdBy *uuid.UUID, ttl *time.Duration) (*form.AccessLink, error) {
	now := a.clock.Now()
	var expiresAt *time.Time
	if ttl != nil {
		t := now.Add(*ttl)
		expiresAt = &t
	}

	link := form.NewAccessLink(submissionID, createdBy, expiresAt, now)
	if err := a.links.Create(ctx, a.db, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (a *accessLinkCommandsImpl) Validate(ctx context.Context, token string) (*form.AccessLink, error) {
	link, err := a.links.FindByToken(ctx, token)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrLinkInvalid)
		}
		return nil, err
	}
	if !link.IsActive {
		return nil, ErrLinkInvalid
	}
	if link.IsExpired(a.clock.Now()) {
		return nil, ErrLinkExpired
	}
	return link, nil
}

func (a *accessLinkCommandsImpl) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := a.links.Deactivate(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrLinkInvalid)
		}
		return err
	}
	return nil
}
