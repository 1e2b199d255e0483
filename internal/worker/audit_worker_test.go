package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/tenant-admin/internal/domain"
	"github.com/spec-kit/tenant-admin/internal/events"
)

type memAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEvent
	fail    bool
}

func (r *memAuditRepo) Append(_ context.Context, event *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("db down")
	}
	r.entries = append(r.entries, *event)
	return nil
}

func (r *memAuditRepo) all() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditEvent{}, r.entries...)
}

func TestAuditWorkerPersistsPublishedEvents(t *testing.T) {
	repo := &memAuditRepo{}
	dispatcher := events.NewInMemoryDispatcher()

	w := NewAuditWorker(repo, zap.NewNop(), 16)
	w.Register(dispatcher)

	dispatcher.Publish(context.Background(), events.Event{
		Type:       events.EventLoginSucceeded,
		UserID:     "user-1",
		TenantID:   "tenant-1",
		Email:      "a@b.com",
		OccurredAt: time.Now(),
	})
	dispatcher.Publish(context.Background(), events.Event{
		Type:       events.EventLoginFailed,
		Email:      "nobody@b.com",
		OccurredAt: time.Now(),
	})

	// Stop drains the queue before returning.
	w.Stop()

	entries := repo.all()
	require.Len(t, entries, 2)
	assert.Equal(t, string(events.EventLoginSucceeded), entries[0].Type)
	assert.Equal(t, "user-1", entries[0].UserID)
	assert.NotEmpty(t, entries[0].ID)
	assert.Equal(t, string(events.EventLoginFailed), entries[1].Type)
	assert.Empty(t, entries[1].UserID)
}

func TestAuditWorkerSurvivesSinkFailure(t *testing.T) {
	repo := &memAuditRepo{fail: true}
	dispatcher := events.NewInMemoryDispatcher()

	w := NewAuditWorker(repo, zap.NewNop(), 16)
	w.Register(dispatcher)

	dispatcher.Publish(context.Background(), events.Event{Type: events.EventLoggedOut, OccurredAt: time.Now()})
	w.Stop()

	assert.Empty(t, repo.all())
}

func TestAuditWorkerDropsWhenQueueFull(t *testing.T) {
	repo := &memAuditRepo{}
	w := NewAuditWorker(repo, zap.NewNop(), 1)
	// The drain goroutine is never started, so the queue can only hold one
	// event; the second enqueue must not block.
	done := make(chan struct{})
	go func() {
		_ = w.enqueue(context.Background(), events.Event{Type: events.EventLoginSucceeded})
		_ = w.enqueue(context.Background(), events.Event{Type: events.EventLoginSucceeded})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}
}
