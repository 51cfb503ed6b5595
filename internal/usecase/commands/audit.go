package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"reimburse-api/internal/domain/audit"
	"reimburse-api/internal/pkg/clock"
)

const deferredRecordTimeout = 10 * time.Second

type AuditCommands interface {
	// Record writes the entry before the response is sent.
	Record(ctx context.Context, e *audit.Entry) error
	// RecordDeferred schedules the write after the response. Best effort:
	// failures are logged and swallowed, never surfaced to the request.
	RecordDeferred(e *audit.Entry)
	// Wait blocks until all deferred writes have finished. Used on shutdown
	// and in tests.
	Wait()
}

type auditCommandsImpl struct {
	repo   AuditWriter
	clock  clock.Clock
	logger *slog.Logger
	wg     sync.WaitGroup
}

func NewAuditCommands(repo AuditWriter, clk clock.Clock, logger *slog.Logger) AuditCommands {
	return &auditCommandsImpl{repo: repo, clock: clk, logger: logger}
}

func (a *auditCommandsImpl) Record(ctx context.Context, e *audit.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = a.clock.Now()
	}
	return a.repo.Insert(ctx, e)
}

func (a *auditCommandsImpl) RecordDeferred(e *audit.Entry) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = a.clock.Now()
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				a.logger.Error("panic in deferred audit write", "panic", r)
			}
		}()

		// Detached from the request context: the response is already gone.
		ctx, cancel := context.WithTimeout(context.Background(), deferredRecordTimeout)
		defer cancel()

		if err := a.repo.Insert(ctx, e); err != nil {
			a.logger.Error("deferred audit write failed",
				"action", e.ActionType, "request_id", e.RequestID, "error", err)
		}
	}()
}

func (a *auditCommandsImpl) Wait() {
	a.wg.Wait()
}
