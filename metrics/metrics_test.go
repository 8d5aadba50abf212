package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	var m Noop
	m.IncRequests(200)
	m.ObserveGeneration(time.Second, nil)
}

func TestPromRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewProm("blogwriter", reg)
	p.IncRequests(200)
	p.IncRequests(200)
	p.IncRequests(500)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Equal(t, 2.0, counterValue(families, "blogwriter_requests_total", "status", "200"))
	assert.Equal(t, 1.0, counterValue(families, "blogwriter_requests_total", "status", "500"))
}

func TestPromGeneration(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewProm("blogwriter", reg)
	p.ObserveGeneration(1500*time.Millisecond, nil)
	p.ObserveGeneration(time.Second, errors.New("boom"))

	families, err := reg.Gather()
	require.NoError(t, err)
	var okCount, errCount uint64
	for _, mf := range families {
		if mf.GetName() != "blogwriter_generation_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			switch labelValue(m, "result") {
			case "ok":
				okCount = m.GetHistogram().GetSampleCount()
			case "error":
				errCount = m.GetHistogram().GetSampleCount()
			}
		}
	}
	assert.Equal(t, uint64(1), okCount)
	assert.Equal(t, uint64(1), errCount)
}

func TestPromHandler(t *testing.T) {
	p := NewProm("blogwriter", nil)
	p.IncRequests(400)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `blogwriter_requests_total{status="400"} 1`)
}

func counterValue(families []*dto.MetricFamily, name, label, value string) float64 {
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelValue(m, label) == value {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
