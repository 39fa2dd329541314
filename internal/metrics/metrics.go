// Package metrics defines the Prometheus metrics of the payroll portal. They
// register with the default registry on import and are served on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "payroll"

// HTTPRequestsTotal counts handled requests by route template, method and status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"route", "method", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route", "method"},
)

// PayslipsRenderedTotal counts composed payslips.
// Label:
//   - source: "download", "archive" or "cli"
var PayslipsRenderedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payslips_rendered_total",
		Help:      "Total number of payslip documents rendered.",
	},
	[]string{"source"},
)

// RecordsMergedTotal counts payroll rows removed by duplicate reconciliation.
var RecordsMergedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_merged_total",
		Help:      "Total number of duplicate payroll rows removed by reconciliation.",
	},
	[]string{"policy"},
)

// RecordsImportedTotal counts rows written by bulk import.
// Label:
//   - kind: "employees" or "payroll"
var RecordsImportedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_imported_total",
		Help:      "Total number of rows upserted by bulk import.",
	},
	[]string{"kind"},
)

var NegativeNetTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "negative_net_total",
		Help:      "Payroll rows saved with a net pay below zero.",
	},
)

// OutboxEventsTotal counts outbox publish attempts by result ("sent" / "failed").
var OutboxEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbox_events_total",
		Help:      "Outbox publish attempts by result.",
	},
	[]string{"result"},
)

// Middleware records request count and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// CacheLookupsTotal counts redis cache lookups.
// Labels:
//   - cache: e.g. "employee_options"
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Redis cache lookups by cache and result.",
	},
	[]string{"cache", "result"},
)
