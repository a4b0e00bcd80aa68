// Package metrics records Prometheus counters for model handles: engine calls
// by operation, and elements loaded or skipped during enumeration.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ifcmodel"

// Engine operation labels.
const (
	OpOpen          = "open"
	OpGetLine       = "get_line"
	OpGetAllLines   = "get_all_lines"
	OpLinesWithType = "get_line_ids_with_type"
	OpItemProps     = "item_properties"
	OpPropertySets  = "property_sets"
	OpResolve       = "resolve_reference"
	OpClose         = "close"
)

// Recorder holds the counters. A nil *Recorder is valid and records nothing.
type Recorder struct {
	engineCalls    *prometheus.CounterVec
	engineErrors   *prometheus.CounterVec
	elementsLoaded prometheus.Counter
	elementsSkip   prometheus.Counter
}

// NewRecorder creates the counters and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		engineCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_calls_total",
			Help:      "Engine calls made by model handles, by operation.",
		}, []string{"op"}),
		engineErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_errors_total",
			Help:      "Engine calls that returned an error, by operation.",
		}, []string{"op"}),
		elementsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elements_loaded_total",
			Help:      "Elements loaded by full-model enumeration.",
		}),
		elementsSkip: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elements_skipped_total",
			Help:      "Line indices skipped by full-model enumeration.",
		}),
	}
	for _, c := range []prometheus.Collector{r.engineCalls, r.engineErrors, r.elementsLoaded, r.elementsSkip} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// EngineCall counts one call of op, and an error when err is non-nil.
func (r *Recorder) EngineCall(op string, err error) {
	if r == nil {
		return
	}
	r.engineCalls.WithLabelValues(op).Inc()
	if err != nil {
		r.engineErrors.WithLabelValues(op).Inc()
	}
}

// Enumerated adds the outcome of one enumeration.
func (r *Recorder) Enumerated(loaded, skipped int) {
	if r == nil {
		return
	}
	r.elementsLoaded.Add(float64(loaded))
	r.elementsSkip.Add(float64(skipped))
}
