package domain

import "time"

// AuditEvent records a security-relevant action for later review.
// TenantID and UserID may be empty for failures that never resolved an actor.
type AuditEvent struct {
	ID         string
	Type       string
	UserID     string
	TenantID   string
	Email      string
	OccurredAt time.Time
	CreatedAt  time.Time
}
