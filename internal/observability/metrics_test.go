package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsErrorCounter(t *testing.T) {
	m := NewMetrics()

	m.RecordError("/api/v1/auth/login", "POST", "AUTH_001")
	m.RecordError("/api/v1/auth/login", "POST", "AUTH_001")
	m.RecordError("/api/v1/auth/refresh", "POST", "AUTH_002")

	assert.Equal(t, int64(2), m.ErrorCount("/api/v1/auth/login", "POST", "AUTH_001"))
	assert.Equal(t, int64(1), m.ErrorCount("/api/v1/auth/refresh", "POST", "AUTH_002"))
	assert.Equal(t, int64(0), m.ErrorCount("/api/v1/auth/login", "POST", "AUTH_002"))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/x", "GET", 200, time.Millisecond)
		m.RecordError("/x", "GET", "SYS_001")
	})
	assert.Equal(t, int64(0), m.ErrorCount("/x", "GET", "SYS_001"))
}
