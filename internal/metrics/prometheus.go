package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ScheduleRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedsim_schedule_runs_total",
			Help: "Total number of algorithm runs over a resolved batch",
		},
		[]string{"algorithm"},
	)
	ScheduleFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedsim_schedule_failures_total",
			Help: "Total number of aborted scheduling requests",
		},
		[]string{"reason"},
	)
	ModelRetrains = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedsim_model_retrains_total",
			Help: "Full retrains of the burst/priority model",
		},
		[]string{"outcome"},
	)
	TrainingSamples = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "schedsim_training_samples",
			Help: "Ground-truth samples held by the prediction cache",
		},
	)
	PredictionSource = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedsim_prediction_source_total",
			Help: "Predictions served, by heuristic fallback or trained model",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(ScheduleRuns)
	prometheus.MustRegister(ScheduleFailures)
	prometheus.MustRegister(ModelRetrains)
	prometheus.MustRegister(TrainingSamples)
	prometheus.MustRegister(PredictionSource)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
