package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
	Payments  *prometheus.CounterVec
}

// NewServerMetrics registers the collectors with reg, or the default registry when reg is nil.
func NewServerMetrics(reg prometheus.Registerer) *ServerMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	payments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "payment_verifications_total",
		Help:      "Payment verification outcomes by provider.",
	}, []string{"provider", "result"})

	reg.MustRegister(requests, latency, payments)
	return &ServerMetrics{Requests: requests, LatencyMS: latency, Payments: payments}
}

// Middleware records one request and its latency, labelled by route template.
func (m *ServerMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
	}
}

// PaymentResult counts one verification outcome. A nil receiver is a no-op.
func (m *ServerMetrics) PaymentResult(provider, result string) {
	if m == nil {
		return
	}
	m.Payments.WithLabelValues(provider, result).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
