package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "tlstory"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	generateDuration prom.Histogram
	documentSlides   *prom.GaugeVec
	generateResults  *prom.CounterVec
	mutations        *prom.CounterVec
	backups          *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the metrics on reg.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		generateDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "generate_duration_seconds",
			Help:      "Time to fetch rows and build the timeline document",
			Buckets:   prom.DefBuckets,
		}),
		documentSlides: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "document_items",
			Help:      "Events and eras in the last generated document",
		}, []string{"kind"}),
		generateResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "generate_results_total",
			Help:      "Document generations by result",
		}, []string{"result"}),
		mutations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Store writes by entity and operation",
		}, []string{"entity", "op"}),
		backups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "backups_total",
			Help:      "Backup snapshots by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.generateDuration, pr.documentSlides, pr.generateResults, pr.mutations, pr.backups)
	return pr
}

func (p *PrometheusRecorder) ObserveGenerate(d time.Duration, events, eras int) {
	if p == nil {
		return
	}
	p.generateDuration.Observe(d.Seconds())
	p.documentSlides.WithLabelValues("events").Set(float64(events))
	p.documentSlides.WithLabelValues("eras").Set(float64(eras))
}

func (p *PrometheusRecorder) IncGenerateResult(result ResultLabel) {
	if p == nil {
		return
	}
	p.generateResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncMutation(entity, op string) {
	if p == nil {
		return
	}
	p.mutations.WithLabelValues(entity, op).Inc()
}

func (p *PrometheusRecorder) IncBackup(success bool) {
	if p == nil {
		return
	}
	res := string(ResultFailed)
	if success {
		res = string(ResultSuccess)
	}
	p.backups.WithLabelValues(res).Inc()
}
