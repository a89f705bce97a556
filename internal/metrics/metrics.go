package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "attrition"

// Metrics owns a private Prometheus registry so several instances can live in
// one process (tests, multiple servers).
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec   // method, path, status
	HTTPRequestDuration *prometheus.HistogramVec // method, path
	TrainingRuns        *prometheus.CounterVec   // result
	TrainingDuration    prometheus.Histogram
	Predictions         *prometheus.CounterVec // model
	ModelF1             *prometheus.GaugeVec   // model
	Classifications     *prometheus.CounterVec // category
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: reg}
	m.HTTPRequestsTotal = m.newCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
	m.HTTPRequestDuration = m.newHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
	m.TrainingRuns = m.newCounterVec(prometheus.CounterOpts{
		Name: "training_runs_total",
		Help: "Training runs by outcome",
	}, []string{"result"})
	m.TrainingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "training_duration_seconds",
		Help:      "Wall time of a full training run",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	})
	reg.MustRegister(m.TrainingDuration)
	m.Predictions = m.newCounterVec(prometheus.CounterOpts{
		Name: "predictions_total",
		Help: "Attrition predictions by serving model",
	}, []string{"model"})
	m.ModelF1 = m.newGaugeVec(prometheus.GaugeOpts{
		Name: "model_f1",
		Help: "Test-split F1 of the latest trained ensembles",
	}, []string{"model"})
	m.Classifications = m.newCounterVec(prometheus.CounterOpts{
		Name: "document_classifications_total",
		Help: "Classified documents by category",
	}, []string{"category"})
	return m
}

func (m *Metrics) newCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	opts.Namespace = namespace
	cv := prometheus.NewCounterVec(opts, labels)
	m.registry.MustRegister(cv)
	return cv
}

func (m *Metrics) newGaugeVec(opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	opts.Namespace = namespace
	gv := prometheus.NewGaugeVec(opts, labels)
	m.registry.MustRegister(gv)
	return gv
}

func (m *Metrics) newHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	opts.Namespace = namespace
	hv := prometheus.NewHistogramVec(opts, labels)
	m.registry.MustRegister(hv)
	return hv
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if path == "" {
		path = "unmatched"
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveTraining records one training run. f1 maps model name to its F1 as a
// fraction and is ignored when err is set.
func (m *Metrics) ObserveTraining(elapsed time.Duration, f1 map[string]float64, err error) {
	if err != nil {
		m.TrainingRuns.WithLabelValues("error").Inc()
		return
	}
	m.TrainingRuns.WithLabelValues("ok").Inc()
	m.TrainingDuration.Observe(elapsed.Seconds())
	for name, v := range f1 {
		m.ModelF1.WithLabelValues(name).Set(v)
	}
}

func (m *Metrics) ObservePrediction(model string) {
	m.Predictions.WithLabelValues(model).Inc()
}

func (m *Metrics) ObserveClassification(category string) {
	m.Classifications.WithLabelValues(category).Inc()
}
