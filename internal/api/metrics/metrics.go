// Package metrics defines and registers the custom Prometheus metrics of the
// storefront auth service. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/storefront/auth-service/internal/core/ports"
)

const namespace = "storefront_auth"

// SignupsTotal counts signup attempts.
// Label:
//   - result: "success", "rejected" (validation or conflict) or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// GuestsProvisionedTotal counts guest accounts created on first login.
var GuestsProvisionedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guests_provisioned_total",
		Help:      "Total number of guest accounts provisioned on first login.",
	},
)

// GuardRejectionsTotal counts bearer tokens refused by the auth guard.
// Label:
//   - reason: "missing_token", "invalid_token" or "unknown_user"
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected by the auth guard, by reason.",
	},
	[]string{"reason"},
)

// Recorder feeds the counters above through ports.AuthMetrics.
type Recorder struct{}

var _ ports.AuthMetrics = Recorder{}

func (Recorder) Signup(result string) { SignupsTotal.WithLabelValues(result).Inc() }

func (Recorder) Login(result string) { LoginsTotal.WithLabelValues(result).Inc() }

func (Recorder) GuestProvisioned() { GuestsProvisionedTotal.Inc() }

func (Recorder) GuardRejected(reason string) { GuardRejectionsTotal.WithLabelValues(reason).Inc() }
