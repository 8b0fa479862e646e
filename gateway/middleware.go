package gateway

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const RequestIDHeader = "X-Request-ID"

var (
	instrumentOnce sync.Once

	requestsCount *prometheus.CounterVec
	resTime       prometheus.Histogram
	resSize       prometheus.Histogram
	reqSize       prometheus.Histogram
	resTimeSum    prometheus.Summary
)

// Instrumentation records per-endpoint request counts and latency,
// request and response size histograms. /metrics itself is skipped.
func Instrumentation() gin.HandlerFunc {
	instrumentOnce.Do(func() {
		requestsCount = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "veteye",
			Subsystem: "request",
			Name:      "requests_count",
			Help:      "Number of requests per each endpoint",
		}, []string{"code", "method", "handler", "host", "url"})

		resTime = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "veteye",
			Subsystem: "response",
			Name:      "response_time_hist",
			Help:      "Response duration in milliseconds",
		})

		resSize = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "veteye",
			Subsystem: "response",
			Name:      "size_histogram",
			Help:      "Response size",
		})

		reqSize = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "veteye",
			Subsystem: "request",
			Name:      "size_hist",
			Help:      "Request size",
		})

		resTimeSum = prometheus.NewSummary(prometheus.SummaryOpts{
			Namespace: "veteye",
			Subsystem: "response",
			Name:      "latency_summary",
			Help:      "Computes responses latency",
		})

		colls := []prometheus.Collector{requestsCount, resTime, resSize, reqSize, resTimeSum}
		for _, v := range colls {
			if err := prometheus.Register(v); err != nil {
				if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
					panic(err)
				}
			}
		}
	})

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := float64(time.Since(start)) * 1e-6 // to millisecond

		status := strconv.Itoa(c.Writer.Status())
		requestsCount.WithLabelValues(status, c.Request.Method, c.HandlerName(), c.Request.Host, c.Request.URL.Path).Inc()
		resTime.Observe(duration)
		resSize.Observe(float64(c.Writer.Size()))
		reqSize.Observe(float64(c.Request.ContentLength))
		resTimeSum.Observe(duration)
	}
}

// OptionsMiddleware for cors headers.
func OptionsMiddleware(c *gin.Context) {
	if c.Request.Method != "OPTIONS" {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Next()
	} else {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "authorization, origin, content-type, accept, X-CSRF-TOKEN")
		c.Header("Allow", "HEAD,GET,POST,PUT,PATCH,DELETE,OPTIONS")
		c.Header("Content-Type", "application/json")
		c.AbortWithStatus(http.StatusOK)
	}
}

// RequestID propagates an inbound request id or assigns a fresh one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}
