package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/linkvault-ai/linkvault/pkg/metrics"
)

type Metrics struct {
	apiResponseTime  *prometheus.HistogramVec
	apiErrorCounter  *prometheus.CounterVec
	enrichStageTime  *prometheus.HistogramVec
	enrichTaskResult *prometheus.CounterVec
	embeddingTime    *prometheus.HistogramVec
	embeddingError   *prometheus.CounterVec
}

func NewMetrics(ns, system string) *Metrics {
	// setup metric
	metrics.SetupMetricsManager(ns, system, prometheus.DefaultRegisterer.(*prometheus.Registry))

	m := &Metrics{
		apiResponseTime:  metrics.NewHistogramVec("api_response_time", []string{"api"}),
		apiErrorCounter:  metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
		enrichStageTime:  metrics.NewHistogramVec("enrich_stage_time", []string{"stage"}),
		enrichTaskResult: metrics.NewCounterVec("enrich_task_result", []string{"task_type", "result"}),
		embeddingTime:    metrics.NewHistogramVec("embedding_request_time", []string{"model"}),
		embeddingError:   metrics.NewCounterVec("embedding_error", []string{"model"}),
	}

	return m
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}

func (m *Metrics) EnrichStageTimer(stage string) *prometheus.Timer {
	return prometheus.NewTimer(m.enrichStageTime.WithLabelValues(stage))
}

func (m *Metrics) EnrichTaskResultInc(taskType, result string) {
	m.enrichTaskResult.WithLabelValues(taskType, result).Inc()
}

func (m *Metrics) EmbeddingTimer(model string) *prometheus.Timer {
	return prometheus.NewTimer(m.embeddingTime.WithLabelValues(model))
}

func (m *Metrics) EmbeddingErrorInc(model string) {
	m.embeddingError.WithLabelValues(model).Inc()
}
