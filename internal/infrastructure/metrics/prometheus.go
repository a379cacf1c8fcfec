// Package metrics exposes storage-core signals to Prometheus.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "workshop"

// Prometheus implements ports.Metrics on its own registry so several
// instances can coexist in one process (tests, embedded use).
type Prometheus struct {
	registry *prometheus.Registry

	identifiersIssued     *prometheus.CounterVec
	identifierCollisions  *prometheus.CounterVec
	identifiersDegraded   *prometheus.CounterVec
	tenantTeardowns       *prometheus.CounterVec
	callbacksPurged       prometheus.Counter
	activityWritesDropped prometheus.Counter
}

func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Prometheus{
		registry: registry,
		identifiersIssued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "identifiers_issued_total",
				Help:      "Identifiers issued by kind and whether they came from the degraded path",
			},
			[]string{"kind", "degraded"},
		),
		identifierCollisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "identifier_collisions_total",
				Help:      "Inserts rejected because the identifier was already taken",
			},
			[]string{"kind"},
		),
		identifiersDegraded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "identifiers_degraded_total",
				Help:      "Identifiers issued without the tenant counter",
			},
			[]string{"kind"},
		),
		tenantTeardowns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tenant_teardowns_total",
				Help:      "Tenant teardowns by result",
			},
			[]string{"result"},
		),
		callbacksPurged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callbacks_purged_total",
			Help:      "Soft-deleted callback requests removed after the purge window",
		}),
		activityWritesDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_writes_dropped_total",
			Help:      "Activity feed writes that failed and were dropped",
		}),
	}
}

func (p *Prometheus) IdentifierIssued(kind string, degraded bool) {
	p.identifiersIssued.With(prometheus.Labels{"kind": kind, "degraded": strconv.FormatBool(degraded)}).Inc()
	if degraded {
		p.identifiersDegraded.With(prometheus.Labels{"kind": kind}).Inc()
	}
}

func (p *Prometheus) IdentifierCollision(kind string) {
	p.identifierCollisions.With(prometheus.Labels{"kind": kind}).Inc()
}

func (p *Prometheus) TeardownFinished(result string) {
	p.tenantTeardowns.With(prometheus.Labels{"result": result}).Inc()
}

func (p *Prometheus) CallbacksPurged(count int64) {
	if count > 0 {
		p.callbacksPurged.Add(float64(count))
	}
}

func (p *Prometheus) ActivityDropped() {
	p.activityWritesDropped.Inc()
}

func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
