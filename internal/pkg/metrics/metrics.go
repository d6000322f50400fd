// Package metrics exposes workflow metrics in the Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"tendering/internal/core/domain/model/award"
	"tendering/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tendering"

// Registry owns a private Prometheus registry. It implements
// commands.Observer.
type Registry struct {
	reg *prometheus.Registry

	Commands        *prometheus.CounterVec
	CommandLatency  *prometheus.HistogramVec
	AwardsCreated   *prometheus.CounterVec
	OutboxPublished prometheus.Counter
	OutboxFailures  prometheus.Counter
	Reconciled      prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_total",
		Help:      "Workflow commands by command name and outcome kind.",
	}, []string{"command", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "command_duration_seconds",
		Help:      "Workflow command latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"command"})
	awards := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "awards_created_total",
		Help:      "Awards created by award status.",
	}, []string{"status"})
	published := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbox_published_total",
		Help:      "Outbox messages delivered to the broker.",
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbox_publish_failures_total",
		Help:      "Outbox relay runs that failed to publish.",
	})
	reconciled := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tender_status_repairs_total",
		Help:      "Tender statuses corrected by reconciliation.",
	})

	r.MustRegister(commands, latency, awards, published, failures, reconciled)
	return &Registry{
		reg:             r,
		Commands:        commands,
		CommandLatency:  latency,
		AwardsCreated:   awards,
		OutboxPublished: published,
		OutboxFailures:  failures,
		Reconciled:      reconciled,
	}
}

// ObserveCommand records the outcome as "ok" or as the error kind.
func (r *Registry) ObserveCommand(command string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = errs.KindOf(err).String()
	}
	r.Commands.WithLabelValues(command, outcome).Inc()
	r.CommandLatency.WithLabelValues(command).Observe(duration.Seconds())
}

func (r *Registry) ObserveAward(a *award.Award) {
	if a == nil {
		return
	}
	r.AwardsCreated.WithLabelValues(a.Status().String()).Inc()
}

func (r *Registry) ObservePublished(n int) {
	r.OutboxPublished.Add(float64(n))
}

func (r *Registry) ObservePublishFailure() {
	r.OutboxFailures.Inc()
}

func (r *Registry) ObserveReconciled() {
	r.Reconciled.Inc()
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
