// Package metrics defines the board's custom Prometheus metrics. They are
// registered with the default registry at package init through promauto.
//
// Request-level metrics (latency, status codes) come from the echoprometheus
// middleware; the counters here track business outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// Result label values shared by the outcome counters.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// RegistrationsTotal counts self-service registrations.
// Labels:
//   - role: requested role, or "invalid" when it does not parse
//   - result: "success", "duplicate", "rejected" or "failure"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// JobsPostedTotal counts jobs created by employers.
var JobsPostedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_posted_total",
		Help:      "Total number of jobs posted.",
	},
)

// ApplicationsTotal counts apply attempts by job seekers.
// Label:
//   - result: "success", "job_not_found", "duplicate" or "failure"
var ApplicationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_total",
		Help:      "Total number of job applications, by result.",
	},
	[]string{"result"},
)

// AuthorizationDenialsTotal counts requests turned away by the role gate.
// Labels:
//   - reason: "not_authenticated" or "wrong_role"
//   - required_role: the role the route demands
var AuthorizationDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denials_total",
		Help:      "Total number of requests denied by the authorization gate.",
	},
	[]string{"reason", "required_role"},
)
