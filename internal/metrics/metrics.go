// Package metrics records traversal and evaluation counters.
//
// Library packages accept a Recorder and default to Noop, so nothing is
// collected unless a caller asks for it. The CLI installs a Prometheus
// recorder when --metrics is set and dumps it in the text exposition format
// when the command finishes.
package metrics

import (
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// PassStats summarizes one finished traversal pass.
type PassStats struct {
	Name           string
	HandlerCalls   int
	IdentityHits   int
	StructuralHits int
	Failed         bool
}

// Recorder receives counters from traversal passes and evaluation contexts.
type Recorder interface {
	ObservePass(s PassStats)
	ObserveEvalCache(hits, misses int)
}

// Noop discards everything.
type Noop struct{}

func (Noop) ObservePass(PassStats)     {}
func (Noop) ObserveEvalCache(int, int) {}

// Prometheus is a Recorder backed by Prometheus collectors registered on its
// own registry.
type Prometheus struct {
	registry *prometheus.Registry

	passesTotal    *prometheus.CounterVec
	handlerCalls   *prometheus.CounterVec
	cacheHitsTotal *prometheus.CounterVec
	evalLookups    *prometheus.CounterVec
}

// NewPrometheus creates and registers the collectors. If registry is nil a
// fresh one is used.
func NewPrometheus(namespace string, registry *prometheus.Registry) *Prometheus {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if namespace == "" {
		namespace = "modelir"
	}

	p := &Prometheus{
		registry: registry,
		passesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "traverse",
				Name:      "passes_total",
				Help:      "Total number of traversal passes by pass name and outcome",
			},
			[]string{"pass", "status"},
		),
		handlerCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "traverse",
				Name:      "handler_calls_total",
				Help:      "Total number of per-kind handler invocations",
			},
			[]string{"pass"},
		),
		cacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "traverse",
				Name:      "cache_hits_total",
				Help:      "Total number of traversal cache hits by cache",
			},
			[]string{"pass", "cache"},
		),
		evalLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "eval",
				Name:      "cache_lookups_total",
				Help:      "Total number of evaluation cache lookups by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(p.passesTotal, p.handlerCalls, p.cacheHitsTotal, p.evalLookups)
	return p
}

// Registry returns the registry holding the collectors.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

func (p *Prometheus) ObservePass(s PassStats) {
	status := "ok"
	if s.Failed {
		status = "failed"
	}
	name := s.Name
	if name == "" {
		name = "anonymous"
	}
	p.passesTotal.WithLabelValues(name, status).Inc()
	p.handlerCalls.WithLabelValues(name).Add(float64(s.HandlerCalls))
	p.cacheHitsTotal.WithLabelValues(name, "identity").Add(float64(s.IdentityHits))
	p.cacheHitsTotal.WithLabelValues(name, "structural").Add(float64(s.StructuralHits))
}

func (p *Prometheus) ObserveEvalCache(hits, misses int) {
	p.evalLookups.WithLabelValues("hit").Add(float64(hits))
	p.evalLookups.WithLabelValues("miss").Add(float64(misses))
}

// WriteText writes every metric family in the Prometheus text format, sorted
// by name.
func (p *Prometheus) WriteText(w io.Writer) error {
	families, err := p.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
