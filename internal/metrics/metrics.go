package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts selection lifecycle events. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	r         *prometheus.Registry
	Triggers  *prometheus.CounterVec
	Cancels   *prometheus.CounterVec
	Results   *prometheus.CounterVec
	Fallbacks prometheus.Counter
}

func New() *Metrics {
	r := prometheus.NewRegistry()

	m := &Metrics{
		r: r,
	}

	counters := map[string]*prometheus.CounterVec{
		"randomizer_triggers_total":      nil,
		"randomizer_cancellations_total": nil,
		"randomizer_results_total":       nil,
	}

	help := map[string]string{
		"randomizer_triggers_total":      "count of selection triggers",
		"randomizer_cancellations_total": "count of pending selections cancelled by a retrigger or dispose",
		"randomizer_results_total":       "count of settled selections by result",
	}

	for k := range counters {
		labels := []string{"preset"}
		if k == "randomizer_results_total" {
			labels = append(labels, "result")
		}

		counter := prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: k,
				Help: help[k],
			},
			labels,
		)
		r.MustRegister(counter)
		counters[k] = counter
	}

	m.Triggers = counters["randomizer_triggers_total"]
	m.Cancels = counters["randomizer_cancellations_total"]
	m.Results = counters["randomizer_results_total"]

	m.Fallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "randomizer_source_fallbacks_total",
		Help: "count of choices served by the pseudorandom fallback",
	})
	r.MustRegister(m.Fallbacks)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.r
}

func (m *Metrics) Triggered(preset string) {
	if m == nil {
		return
	}
	m.Triggers.WithLabelValues(preset).Inc()
}

func (m *Metrics) Cancelled(preset string) {
	if m == nil {
		return
	}
	m.Cancels.WithLabelValues(preset).Inc()
}

func (m *Metrics) Finished(preset, result string) {
	if m == nil {
		return
	}
	m.Results.WithLabelValues(preset, result).Inc()
}

func (m *Metrics) FellBack() {
	if m == nil {
		return
	}
	m.Fallbacks.Inc()
}

// WriteFile dumps all metrics in the text exposition format, for the
// node_exporter textfile collector.
func (m *Metrics) WriteFile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.r)
}
