// Package metrics holds the Prometheus collectors of the gallery service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gallery_http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gallery_http_request_duration_seconds",
		Help:    "HTTP request latency by route and method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// LoginFailures counts rejected admin credentials.
	LoginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gallery_login_failures_total",
		Help: "Rejected admin login attempts.",
	})

	// LoginThrottled counts login attempts refused by the rate limiter.
	LoginThrottled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gallery_login_throttled_total",
		Help: "Login attempts refused by the rate limiter.",
	})

	// BlobFailures counts blob store errors by operation ("put" | "delete").
	BlobFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gallery_blob_failures_total",
		Help: "Blob store failures by operation.",
	}, []string{"op"})
)

// Middleware records request counts and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		httpRequests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
