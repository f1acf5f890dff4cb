package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline's Prometheus collectors.
type Metrics struct {
	CommandsTotal *prometheus.CounterVec
	SearchSeconds prometheus.Histogram
	NodesExpanded prometheus.Histogram
	PlanActions   prometheus.Histogram
}

// Command outcomes recorded in CommandsTotal.
const (
	OutcomePlanned     = "planned"
	OutcomeAlreadyTrue = "already_true"
	OutcomeNoParse     = "no_parse"
	OutcomeNoMatch     = "no_matching_object"
	OutcomeNoReading   = "no_valid_interpretation"
	OutcomeAmbiguous   = "ambiguous"
	OutcomeTimeout     = "search_timeout"
	OutcomeNoPath      = "no_path"
)

// NewMetrics creates and registers the metric set.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shrdlite",
			Name:      "commands_total",
			Help:      "Commands processed, by outcome.",
		}, []string{"outcome"}),

		SearchSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shrdlite",
			Name:      "search_duration_seconds",
			Help:      "Wall-clock duration of the A* search per command.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),

		NodesExpanded: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shrdlite",
			Name:      "search_nodes_expanded",
			Help:      "States expanded by the A* search per command.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 10),
		}),

		PlanActions: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shrdlite",
			Name:      "plan_actions",
			Help:      "Primitive actions in the returned plan.",
			Buckets:   prometheus.LinearBuckets(0, 5, 12),
		}),
	}
}
