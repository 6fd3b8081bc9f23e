package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	AccessDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lesson_access_decisions_total",
			Help: "Resolved lesson access decisions by tier",
		},
		[]string{"tier"},
	)

	ProgressWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lesson_progress_writes_total",
			Help: "Lesson progress upserts by result",
		},
		[]string{"result"},
	)

	EnrollmentsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrollments_created_total",
			Help: "Enrollments created by source",
		},
		[]string{"source"},
	)

	SettingsCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_settings_cache_total",
			Help: "Site settings reads by cache outcome",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			AccessDecisions,
			ProgressWrites,
			EnrollmentsCreated,
			SettingsCache,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
