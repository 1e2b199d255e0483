package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/tenant-admin/internal/domain"
	"github.com/spec-kit/tenant-admin/internal/events"
	"github.com/spec-kit/tenant-admin/internal/repository"
)

// AuditWorker drains published auth events onto the audit_events table off
// the request path. A full queue drops events rather than blocking login.
type AuditWorker struct {
	repo   repository.AuditRepository
	logger *zap.Logger
	queue  chan events.Event
	wg     sync.WaitGroup
}

// NewAuditWorker builds a worker with the given queue capacity.
func NewAuditWorker(repo repository.AuditRepository, logger *zap.Logger, buffer int) *AuditWorker {
	if buffer <= 0 {
		buffer = 256
	}
	return &AuditWorker{
		repo:   repo,
		logger: logger,
		queue:  make(chan events.Event, buffer),
	}
}

// Register subscribes the worker to every auth event type and starts the
// drain goroutine.
func (w *AuditWorker) Register(dispatcher events.Dispatcher) {
	for _, eventType := range []events.EventType{
		events.EventLoginSucceeded,
		events.EventLoginFailed,
		events.EventTokenRefreshed,
		events.EventTenantSwitched,
		events.EventLoggedOut,
		events.EventUserProvisioned,
		events.EventPasswordReset,
	} {
		dispatcher.Subscribe(eventType, w.enqueue)
	}

	w.wg.Add(1)
	go w.run()
}

// Stop closes the queue and waits for the remaining events to be written.
func (w *AuditWorker) Stop() {
	close(w.queue)
	w.wg.Wait()
}

func (w *AuditWorker) enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("audit queue full, dropping event", zap.String("type", string(event.Type)))
	}
	return nil
}

func (w *AuditWorker) run() {
	defer w.wg.Done()

	for event := range w.queue {
		entry := &domain.AuditEvent{
			ID:         uuid.NewString(),
			Type:       string(event.Type),
			UserID:     event.UserID,
			TenantID:   event.TenantID,
			Email:      event.Email,
			OccurredAt: event.OccurredAt,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := w.repo.Append(ctx, entry)
		cancel()
		if err != nil {
			w.logger.Error("failed to append audit event",
				zap.String("type", entry.Type),
				zap.Error(err))
			continue
		}

		w.logger.Info("audit event recorded",
			zap.String("type", entry.Type),
			zap.String("user_id", entry.UserID),
			zap.String("tenant_id", entry.TenantID))
	}
}
