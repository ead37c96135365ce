// Package metrics — счётчики Prometheus, регистрируются в дефолтном
// реестре и отдаются promhttp-хендлером на служебном порту.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal — количество HTTP-запросов по методу/маршруту/статусу.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "task_tracker_http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration — длительность HTTP-запросов.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "task_tracker_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// RefreshReuseDetectedTotal — срабатывания защиты от повторного
	// использования refresh-токена (каждое — полный отзыв сессий).
	RefreshReuseDetectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "task_tracker_refresh_reuse_detected_total",
		Help: "Refresh token reuse detections causing full session revocation.",
	})

	// AuthFailuresTotal — отказы аутентификации по причинам (только для
	// внутренней диагностики, ответы клиенту неразличимы).
	AuthFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "task_tracker_auth_failures_total",
		Help: "Authentication failures by internal reason.",
	}, []string{"reason"})
)
