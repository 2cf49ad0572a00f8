package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("POST", "/entry", "200", 0.05)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/entry", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/auth/owner/login", "200", 0.1)
	RecordHTTPRequest("POST", "/auth/owner/login", "200", 0.2)
	RecordHTTPRequest("POST", "/auth/owner/login", "401", 0.05)

	successCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/owner/login", "200"))
	failCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/owner/login", "401"))

	assert.Equal(t, float64(2), successCount)
	assert.Equal(t, float64(1), failCount)
}

func TestRecordCheckIn(t *testing.T) {
	CheckInsTotal.Reset()

	RecordCheckIn("success")
	RecordCheckIn("success")
	RecordCheckIn("failed")

	assert.Equal(t, float64(2), testutil.ToFloat64(CheckInsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(CheckInsTotal.WithLabelValues("failed")))
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("welcome", "sent")
	RecordEmail("expiry_reminder", "failed")

	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("welcome", "sent")))
	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("expiry_reminder", "failed")))
}
