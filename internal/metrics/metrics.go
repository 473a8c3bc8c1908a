// Package metrics registers the counters this runtime exposes:
// point-to-point sends/receives, bytes moved, and deadlocks detected.
// Nothing in this package is on the critical path of correctness — a
// caller who never mounts the registry on an HTTP handler gets a
// runtime that behaves identically, per SPEC_FULL.md's ambient-stack
// section.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors groups every counter this runtime publishes. World holds
// one instance and counts point-to-point and collective calls against it
// itself; the collective package never sees it.
type Collectors struct {
	SendsTotal       *prometheus.CounterVec
	RecvsTotal       *prometheus.CounterVec
	BytesSent        *prometheus.CounterVec
	BytesReceived    *prometheus.CounterVec
	DeadlocksTotal   prometheus.Counter
	CollectivesTotal *prometheus.CounterVec
}

// NewCollectors builds and registers a fresh set of counters against
// reg. Passing a new prometheus.Registry per World keeps concurrently
// initialized ranks (as in tests) from colliding on default-registry
// double-registration.
func NewCollectors(reg *prometheus.Registry) *Collectors {
	c := &Collectors{
		SendsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mimpi",
			Name:      "sends_total",
			Help:      "Point-to-point sends attempted, labeled by outcome.",
		}, []string{"outcome"}),
		RecvsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mimpi",
			Name:      "recvs_total",
			Help:      "Point-to-point receives attempted, labeled by outcome.",
		}, []string{"outcome"}),
		BytesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mimpi",
			Name:      "bytes_sent_total",
			Help:      "Payload bytes sent point-to-point.",
		}, []string{"dst"}),
		BytesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mimpi",
			Name:      "bytes_received_total",
			Help:      "Payload bytes received point-to-point.",
		}, []string{"src"}),
		DeadlocksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mimpi",
			Name:      "deadlocks_detected_total",
			Help:      "Receives that returned DEADLOCK_DETECTED.",
		}),
		CollectivesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mimpi",
			Name:      "collectives_total",
			Help:      "Collective calls completed, labeled by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}

	reg.MustRegister(
		c.SendsTotal,
		c.RecvsTotal,
		c.BytesSent,
		c.BytesReceived,
		c.DeadlocksTotal,
		c.CollectivesTotal,
	)
	return c
}
