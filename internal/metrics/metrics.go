package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymgate_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymgate_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymgate_checkins_total",
			Help: "Total number of check-in scan attempts",
		},
		[]string{"status"},
	)

	OwnersRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymgate_owners_registered_total",
			Help: "Total number of gym owner registrations",
		},
	)

	MembersRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymgate_members_registered_total",
			Help: "Total number of member registrations",
		},
	)

	MembershipRenewalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymgate_membership_renewals_total",
			Help: "Total number of membership renewals",
		},
	)

	MembershipCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymgate_membership_cancellations_total",
			Help: "Total number of membership cancellations",
		},
	)

	PlansCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymgate_plans_created_total",
			Help: "Total number of membership plans created",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymgate_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymgate_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	ExpiryRemindersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymgate_expiry_reminders_total",
			Help: "Total number of membership expiry reminders queued",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordCheckIn(status string) {
	CheckInsTotal.WithLabelValues(status).Inc()
}

func RecordOwnerRegistration() {
	OwnersRegisteredTotal.Inc()
}

func RecordMemberRegistration() {
	MembersRegisteredTotal.Inc()
}

func RecordRenewal() {
	MembershipRenewalsTotal.Inc()
}

func RecordCancellation() {
	MembershipCancellationsTotal.Inc()
}

func RecordPlanCreated() {
	PlansCreatedTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordExpiryReminder() {
	ExpiryRemindersTotal.Inc()
}
