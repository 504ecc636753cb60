// Package metrics defines the custom Prometheus metrics of the portfolio API.
// HTTP request metrics come from echoprometheus; the counters here track the
// business events behind those requests.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

// ── Auth ─────────────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Labels:
//   - kind: "user" or "admin"
//   - outcome: "success", "invalid_credentials" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

// AuthRejectionsTotal counts requests turned away by the auth middleware.
// Label:
//   - reason: "missing_token", "token_expired", "token_invalid", "user_gone",
//     "password_changed" or "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or role checks.",
	},
	[]string{"reason"},
)

var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_requests_total",
		Help:      "Total number of requests rejected by the per-IP rate limiter.",
	},
)

// ── Projects ─────────────────────────────────────────────────────────────────

var ProjectsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_submitted_total",
		Help:      "Total number of project submissions, by project type.",
	},
	[]string{"project_type"},
)

// ProjectStatusTransitionsTotal counts admin status changes by target status.
var ProjectStatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "project_status_transitions_total",
		Help:      "Total number of project status updates, by new status.",
	},
	[]string{"status"},
)

// ── Gallery ──────────────────────────────────────────────────────────────────

var GalleryItemsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gallery_items_created_total",
		Help:      "Total number of gallery items created, by category.",
	},
	[]string{"category"},
)

var GalleryImagesUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gallery_images_uploaded_total",
		Help:      "Total number of gallery images stored in object storage.",
	},
)
