package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/model"
)

func TestUploadMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewUploadMetrics(reg)
	require.NoError(t, err)

	m.StartBatch()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.inFlight))

	recs := []model.DocumentRecord{
		{DigestKind: model.DigestKindSHA256},
		{DigestKind: model.DigestKindSHA256},
		{DigestKind: model.DigestKindFallback},
	}
	m.ObserveDocuments(recs, nil)
	m.ObserveDocuments(recs[:1], errors.New("persist"))
	m.FinishBatch(150*time.Millisecond, nil)

	assert.Equal(t, float64(0), testutil.ToFloat64(m.inFlight))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.documentsTotal.WithLabelValues("success", "sha256")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.documentsTotal.WithLabelValues("success", "fallback")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.documentsTotal.WithLabelValues("error", "sha256")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.batchDuration))

	_, err = NewUploadMetrics(reg)
	assert.Error(t, err)
}

func TestUploadMetrics_NilIsSafe(t *testing.T) {
	var m *UploadMetrics
	assert.NotPanics(t, func() {
		m.StartBatch()
		m.ObserveDocuments([]model.DocumentRecord{{}}, nil)
		m.FinishBatch(time.Second, nil)
	})
}
