package queries

import (
	"context"
	"log/slog"

	"reimburse-api/internal/domain/form"
	"reimburse-api/internal/infra"
	"reimburse-api/internal/pkg/clock"
	"reimburse-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrFormNotFound = errs.New("form not found")

type FormReader interface {
	FindByToken(ctx context.Context, token string) (*form.Form, error)
	FindByID(ctx context.Context, id uuid.UUID) (*form.Form, error)
	MarkExpired(ctx context.Context, id uuid.UUID) error
}

type FormQueries interface {
	GetByToken(ctx context.Context, token string) (*FormView, error)
	GetStatusByToken(ctx context.Context, token string) (*FormStatusView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*FormView, error)
}

type formQueriesImpl struct {
	repo  FormReader
	clock clock.Clock
}

func NewFormQueries(repo FormReader, clk clock.Clock) FormQueries {
	return &formQueriesImpl{repo: repo, clock: clk}
}

func (q *formQueriesImpl) GetByToken(ctx context.Context, token string) (*FormView, error) {
	f, err := q.load(ctx, func(ctx context.Context) (*form.Form, error) {
		return q.repo.FindByToken(ctx, token)
	})
	if err != nil {
		return nil, err
	}
	return FormToView(f), nil
}

func (q *formQueriesImpl) GetStatusByToken(ctx context.Context, token string) (*FormStatusView, error) {
	f, err := q.load(ctx, func(ctx context.Context) (*form.Form, error) {
		return q.repo.FindByToken(ctx, token)
	})
	if err != nil {
		return nil, err
	}
	return &FormStatusView{
		Status:      f.Status().String(),
		ExpiresAt:   f.ExpiresAt(),
		SubmittedAt: f.SubmittedAt(),
	}, nil
}

func (q *formQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*FormView, error) {
	f, err := q.load(ctx, func(ctx context.Context) (*form.Form, error) {
		return q.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return FormToView(f), nil
}

// load fetches a form and surfaces lazy expiry: a pending form read past its
// expiry is reported (and persisted) as expired.
func (q *formQueriesImpl) load(ctx context.Context, find func(context.Context) (*form.Form, error)) (*form.Form, error) {
	f, err := find(ctx)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrFormNotFound)
		}
		return nil, err
	}
	if f.Status() == form.StatusPending && f.IsExpired(q.clock.Now()) {
		if err := q.repo.MarkExpired(ctx, f.ID()); err != nil {
			slog.Warn("failed to persist form expiry", "form_id", f.ID(), "error", err)
		}
		f = expiredCopy(f)
	}
	return f, nil
}

func expiredCopy(f *form.Form) *form.Form {
	return form.ReconstructForm(
		f.ID(), f.Token(), f.Attrs(), f.IdempotencyKey(), f.ExternalOrderID(),
		form.StatusExpired, f.IsSubmitted(), f.CreatedAt(), f.ExpiresAt(), f.SubmittedAt(),
	)
}

func FormToView(f *form.Form) *FormView {
	attrs := f.Attrs()
	return &FormView{
		ID:              f.ID(),
		Token:           f.Token(),
		ClientID:        attrs.ClientID,
		PolicyID:        attrs.PolicyID,
		ServiceID:       attrs.ServiceID,
		Name:            attrs.Name,
		DNI:             attrs.DNI,
		CBU:             attrs.CBU,
		CUIT:            attrs.CUIT,
		Email:           attrs.Email,
		Status:          f.Status().String(),
		ExternalOrderID: f.ExternalOrderID(),
		CreatedAt:       f.CreatedAt(),
		ExpiresAt:       f.ExpiresAt(),
		SubmittedAt:     f.SubmittedAt(),
	}
}
