package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collaborator labels used with CollaboratorErrors and RequestSeconds.
const (
	CollaboratorWeather    = "weather"
	CollaboratorEvaluator  = "evaluator"
	CollaboratorRepository = "repository"
	CollaboratorSites      = "sites"
)

type Metrics struct {
	Evaluations        *prometheus.CounterVec
	CollaboratorErrors *prometheus.CounterVec
	RequestSeconds     *prometheus.HistogramVec
	ActiveWorkers      prometheus.Gauge
	SitesProcessed     prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Evaluations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "aeolus_launch_evaluations_total",
			Help: "Total number of launch evaluations by classification.",
		}, []string{"classification"}),
		CollaboratorErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "aeolus_collaborator_errors_total",
			Help: "Total number of errors returned by external collaborators.",
		}, []string{"collaborator"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aeolus_collaborator_request_duration_seconds",
			Help:    "Duration of requests to external collaborators.",
			Buckets: prometheus.DefBuckets,
		}, []string{"collaborator"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "aeolus_active_workers",
			Help: "Current number of active workers evaluating sites.",
		}),
		SitesProcessed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "aeolus_sites_processed_total",
			Help: "Total number of sites taken through an evaluation round.",
		}),
	}
}
