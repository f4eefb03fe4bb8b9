package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics("celebration_test")

	m.RecordRequest("/staff/tasks", "GET", 200, 15*time.Millisecond)
	m.RecordRequest("/staff/tasks", "GET", 200, 5*time.Millisecond)
	m.RecordError("/admin/staff", "POST", "CONFLICT")
	m.SetOverdueAlerts(4)
	m.RecordCompletion("CALL", "committed")
	m.RecordWishFallback()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("/staff/tasks", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorCount.WithLabelValues("/admin/staff", "POST", "CONFLICT")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.overdueAlerts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.completions.WithLabelValues("CALL", "committed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.wishFallbacks))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.SetOverdueAlerts(1)
		m.RecordCompletion("GREET", "rolled_back")
		m.RecordWishFallback()
	})
	assert.Nil(t, m.Registry())
}
