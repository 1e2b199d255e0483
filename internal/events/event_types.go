package events

import "time"

// EventType enumerates the auth events the service publishes.
type EventType string

const (
	EventLoginSucceeded  EventType = "auth.login_succeeded"
	EventLoginFailed     EventType = "auth.login_failed"
	EventTokenRefreshed  EventType = "auth.token_refreshed"
	EventTenantSwitched  EventType = "auth.tenant_switched"
	EventLoggedOut       EventType = "auth.logged_out"
	EventUserProvisioned EventType = "auth.user_provisioned"
	EventPasswordReset   EventType = "auth.password_reset"
)

// Event is a security-relevant occurrence. UserID and TenantID may be empty
// when the actor never resolved (failed logins).
type Event struct {
	Type       EventType
	UserID     string
	TenantID   string
	Email      string
	OccurredAt time.Time
}
