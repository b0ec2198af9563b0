// Package metrics defines and registers all custom Prometheus metrics for the
// consultancy API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry through promauto
// when the package is imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "demandhub"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "failure" or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersRegisteredTotal counts new accounts.
// Label:
//   - role: the role given at registration (e.g. "designer")
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered team members, by role.",
	},
	[]string{"role"},
)

// ── Work metrics ──────────────────────────────────────────────────────────────

// CampaignsCreatedTotal counts newly created campaigns.
// Label:
//   - campaign_type: e.g. "seo", "brand_launch"
var CampaignsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "campaigns_created_total",
		Help:      "Total number of campaigns created, by campaign type.",
	},
	[]string{"campaign_type"},
)

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - priority: "low", "medium", "high" or "urgent"
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by priority.",
	},
	[]string{"priority"},
)

// TasksUnassignedTotal counts tasks whose assignee was removed because the
// assigned member was deleted.
var TasksUnassignedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_unassigned_total",
		Help:      "Total number of tasks unassigned after a team member was deleted.",
	},
)

// ── Storage metrics ───────────────────────────────────────────────────────────

// TimestampParseFailuresTotal counts stored timestamp strings that could not
// be parsed and were returned unconverted.
// Label:
//   - field: the document field name (e.g. "due_date")
var TimestampParseFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "timestamp_parse_failures_total",
		Help:      "Total number of stored timestamps that failed to parse on read.",
	},
	[]string{"field"},
)

// DashboardQueryDuration measures how long computing dashboard stats takes.
var DashboardQueryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dashboard_query_duration_seconds",
		Help:      "Duration of dashboard statistics computation.",
		Buckets:   prometheus.DefBuckets,
	},
)
