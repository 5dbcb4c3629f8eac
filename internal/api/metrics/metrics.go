// Package metrics defines and registers all custom Prometheus metrics for the
// admin API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "admin_api"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "locked", "deactivated",
//     "invalid_2fa", "two_factor_required"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of admin login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// AccountLockoutsTotal counts the moments an account crossed the failed
// attempt threshold and got locked.
var AccountLockoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_lockouts_total",
		Help:      "Total number of admin accounts locked after repeated failures.",
	},
)

// TwoFactorEventsTotal counts two-factor lifecycle events.
// Labels:
//   - action: "generate", "enable", "disable"
//   - result: "success" or "failure"
var TwoFactorEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "two_factor_events_total",
		Help:      "Total number of two-factor setup events, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEntriesTotal counts audit entries written, by action kind and outcome
// of the audited operation.
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Total number of audit log entries appended, by action and success.",
	},
	[]string{"action", "success"},
)

// AuditWriteFailuresTotal counts audit writes that failed. Audit logging is
// best-effort: failures are swallowed for the caller and surfaced only here
// and in the operational log.
var AuditWriteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_failures_total",
		Help:      "Total number of audit log writes that failed and were swallowed.",
	},
)

// ── Moderation metrics ────────────────────────────────────────────────────────

// ModerationActionsTotal counts completed moderation operations.
// Label:
//   - action: audit action kind (e.g. "USER_BAN", "MESSAGE_DELETE")
var ModerationActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_actions_total",
		Help:      "Total number of completed moderation actions, by kind.",
	},
	[]string{"action"},
)

// RateLimitedRequestsTotal counts requests rejected by the login rate limiter.
var RateLimitedRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_requests_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
)
