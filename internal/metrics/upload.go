// Package metrics holds the Prometheus collectors for the upload pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"docverify/internal/model"
)

// UploadMetrics tracks batches and documents going through Submit.
// A nil *UploadMetrics records nothing.
type UploadMetrics struct {
	documentsTotal *prometheus.CounterVec
	batchDuration  *prometheus.HistogramVec
	inFlight       prometheus.Gauge
}

// NewUploadMetrics registers the upload collectors with reg.
func NewUploadMetrics(reg prometheus.Registerer) (*UploadMetrics, error) {
	m := &UploadMetrics{
		documentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "docverify",
				Subsystem: "upload",
				Name:      "documents_total",
				Help:      "Documents processed by outcome and digest kind.",
			},
			[]string{"status", "digest_kind"},
		),
		batchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "docverify",
				Subsystem: "upload",
				Name:      "batch_duration_seconds",
				Help:      "Upload batch duration in seconds by outcome.",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"status"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "docverify",
				Subsystem: "upload",
				Name:      "batches_in_flight",
				Help:      "Number of upload batches being processed.",
			},
		),
	}

	for _, c := range []prometheus.Collector{m.documentsTotal, m.batchDuration, m.inFlight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// StartBatch marks a batch as in flight.
func (m *UploadMetrics) StartBatch() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

// FinishBatch records the outcome of a batch started with StartBatch.
func (m *UploadMetrics) FinishBatch(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.inFlight.Dec()
	m.batchDuration.WithLabelValues(status(err)).Observe(d.Seconds())
}

// ObserveDocuments counts committed or failed documents.
func (m *UploadMetrics) ObserveDocuments(recs []model.DocumentRecord, err error) {
	if m == nil {
		return
	}
	for _, r := range recs {
		m.documentsTotal.WithLabelValues(status(err), string(r.DigestKind)).Inc()
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
