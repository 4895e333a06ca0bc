// Package metrics provides a Prometheus implementation of types.Metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/krisalay/expiring-map/types"
)

// Prometheus counts map lifecycle events.
type Prometheus struct {
	Inserts    prometheus.Counter
	Duplicates prometheus.Counter
	Hits       prometheus.Counter
	Misses     prometheus.Counter
	Removals   prometheus.Counter
	Expired    prometheus.Counter
}

var _ types.Metrics = (*Prometheus)(nil)

// NewPrometheus registers the counters on reg under namespace. A nil reg
// leaves the counters unregistered.
func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	f := promauto.With(reg)

	return &Prometheus{
		Inserts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inserts_total",
			Help:      "Total number of entries stored",
		}),
		Duplicates: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_inserts_total",
			Help:      "Total number of inserts discarded because the key was present",
		}),
		Hits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hits_total",
			Help:      "Total number of indexed lookups that found a live entry",
		}),
		Misses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "misses_total",
			Help:      "Total number of indexed lookups that created a default entry",
		}),
		Removals: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "removals_total",
			Help:      "Total number of entries removed explicitly",
		}),
		Expired: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expired_total",
			Help:      "Total number of entries removed by sweeps",
		}),
	}
}

func (p *Prometheus) Insert()    { p.Inserts.Inc() }
func (p *Prometheus) Duplicate() { p.Duplicates.Inc() }
func (p *Prometheus) Hit()       { p.Hits.Inc() }
func (p *Prometheus) Miss()      { p.Misses.Inc() }
func (p *Prometheus) Remove()    { p.Removals.Inc() }
func (p *Prometheus) Expire()    { p.Expired.Inc() }
