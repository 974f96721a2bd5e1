// Package metrics defines and registers all custom Prometheus metrics for the
// LifeFlow API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at import time
// via promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lifeflow"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts first-factor login attempts.
// Label:
//   - result: "otp_required" (password accepted) or "invalid_credentials"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of first-factor login attempts, by result.",
	},
	[]string{"result"},
)

// OTPIssuedTotal counts passcodes issued and delivered by email.
// Label:
//   - trigger: "login" or "resend"
var OTPIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of one-time passcodes issued, by trigger.",
	},
	[]string{"trigger"},
)

// OTPVerificationsTotal counts second-factor submissions.
// Label:
//   - result: "success", "invalid_code", "too_many_attempts", "expired", "not_found"
var OTPVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "Total number of OTP verification attempts, by result.",
	},
	[]string{"result"},
)

// SessionsRevokedTotal counts logouts that pushed a token ID into the
// revocation set.
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of session tokens revoked at logout.",
	},
)

// ── Appointment metrics ───────────────────────────────────────────────────────

// AppointmentsBookedTotal counts successfully persisted bookings.
var AppointmentsBookedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_booked_total",
		Help:      "Total number of appointments booked.",
	},
)

// AppointmentEventsTotal counts dispatcher event outcomes.
// Labels:
//   - kind: "booked" or "cancelled"
//   - result: "processed" or "error"
var AppointmentEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointment_events_total",
		Help:      "Total number of appointment events consumed by the dispatcher, by kind and result.",
	},
	[]string{"kind", "result"},
)
