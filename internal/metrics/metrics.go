// Package metrics holds the Prometheus counters for puzzle generation, moves
// and completions. Each Metrics owns its registry so tests and concurrent
// CLI invocations never share global state.
package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

const namespace = "nine"

// Retry stages.
const (
	StageSelect = "select" // selector draws beyond the first
	StageVerify = "verify" // candidates rejected by the solvability check
)

// Metrics groups the counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	PuzzlesGenerated  prometheus.Counter
	PuzzlesSkipped    prometheus.Counter
	GenerationRetries *prometheus.CounterVec
	Moves             *prometheus.CounterVec
	Completions       *prometheus.CounterVec
}

// New registers a fresh set of counters on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		PuzzlesGenerated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "puzzles_generated_total",
			Help:      "Puzzles generated and stored.",
		}),
		PuzzlesSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "puzzles_skipped_total",
			Help:      "Seeding slots skipped because a puzzle already existed.",
		}),
		GenerationRetries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_retries_total",
			Help:      "Generation retries by stage.",
		}, []string{"stage"}),
		Moves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Moves submitted to sessions by result.",
		}, []string{"result"}),
		Completions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completions_total",
			Help:      "Recorded completions by feedback kind.",
		}, []string{"feedback"}),
	}
}

// Generated records one stored puzzle together with the retries it took.
func (m *Metrics) Generated(candidates, draws int) {
	if m == nil {
		return
	}
	m.PuzzlesGenerated.Inc()
	if candidates > 1 {
		m.GenerationRetries.WithLabelValues(StageVerify).Add(float64(candidates - 1))
	}
	if draws > candidates {
		m.GenerationRetries.WithLabelValues(StageSelect).Add(float64(draws - candidates))
	}
}

// Skipped records one seeding slot that already held a puzzle.
func (m *Metrics) Skipped() {
	if m == nil {
		return
	}
	m.PuzzlesSkipped.Inc()
}

// Move records a move result such as "applied" or a rejection reason.
func (m *Metrics) Move(result string) {
	if m == nil {
		return
	}
	m.Moves.WithLabelValues(result).Inc()
}

// Completion records a recorded attempt by feedback kind.
func (m *Metrics) Completion(feedback string) {
	if m == nil {
		return
	}
	m.Completions.WithLabelValues(feedback).Inc()
}

// Snapshot returns every counter series keyed by name and sorted labels,
// e.g. `nine_moves_total{result="applied"}`.
func (m *Metrics) Snapshot() (map[string]float64, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}
	out := make(map[string]float64)
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			out[seriesName(mf.GetName(), metric.GetLabel())] = metric.GetCounter().GetValue()
		}
	}
	return out, nil
}

func seriesName(name string, labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return name
	}
	pairs := make([]string, len(labels))
	for i, l := range labels {
		pairs[i] = fmt.Sprintf("%s=%q", l.GetName(), l.GetValue())
	}
	sort.Strings(pairs)
	return name + "{" + strings.Join(pairs, ",") + "}"
}

// WriteText writes the counters in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
