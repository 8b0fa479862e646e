package airtable

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var airtableMetricsOnce sync.Once

var (
	airtableRequestsTotal   *prometheus.CounterVec
	airtableRequestDuration *prometheus.HistogramVec
	airtableRequestSize     *prometheus.HistogramVec
	airtableResponseSize    *prometheus.HistogramVec
)

func registerHistogramVec(c *prometheus.HistogramVec) *prometheus.HistogramVec {
	if err := prometheus.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing
			}
		}
		log.Printf("prometheus histogram register failed: %v", err)
	}
	return c
}

func registerCountVec(c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := prometheus.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
		log.Printf("prometheus counter register failed: %v", err)
	}
	return c
}

func initAirtableMetrics() {
	airtableMetricsOnce.Do(func() {
		airtableRequestsTotal = registerCountVec(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "veteye",
			Subsystem: "airtable_client",
			Name:      "requests_total",
			Help:      "Total number of Airtable HTTP requests.",
		}, []string{"table", "method", "status", "result"}))

		airtableRequestDuration = registerHistogramVec(prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "veteye",
			Subsystem: "airtable_client",
			Name:      "request_duration_seconds",
			Help:      "Duration of Airtable HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"table", "method", "result"}))

		sizeBuckets := []float64{100, 500, 1_000, 2_000, 5_000, 10_000, 25_000, 50_000, 100_000, 250_000, 500_000, 1_000_000}
		airtableRequestSize = registerHistogramVec(prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "veteye",
			Subsystem: "airtable_client",
			Name:      "request_size_bytes",
			Help:      "Size of Airtable HTTP requests.",
			Buckets:   sizeBuckets,
		}, []string{"table", "method"}))

		airtableResponseSize = registerHistogramVec(prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "veteye",
			Subsystem: "airtable_client",
			Name:      "response_size_bytes",
			Help:      "Size of Airtable HTTP responses.",
			Buckets:   sizeBuckets,
		}, []string{"table", "method"}))
	})
}

func recordAirtableMetrics(table, method string, statusCode int, err error, reqSize int, respSize int, duration time.Duration) {
	if airtableRequestsTotal == nil {
		return
	}
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	result := "success"
	if err != nil {
		result = "error"
	}

	airtableRequestsTotal.WithLabelValues(table, method, status, result).Inc()
	airtableRequestDuration.WithLabelValues(table, method, result).Observe(duration.Seconds())
	airtableRequestSize.WithLabelValues(table, method).Observe(float64(reqSize))
	airtableResponseSize.WithLabelValues(table, method).Observe(float64(respSize))
}
