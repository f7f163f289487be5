package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersLoadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_loaded_total",
		Help: "Total number of successful order collection loads",
	})

	OrderLoadFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_load_failures_total",
		Help: "Total number of failed order collection loads",
	})

	OrderStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changes_total",
		Help: "Total number of accepted order status transitions",
	}, []string{"from", "to"})

	OrderStatusRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_status_rejections_total",
		Help: "Total number of status transitions rejected by the workflow table",
	})

	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders created through checkout",
	})

	UsersLoadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "users_loaded_total",
		Help: "Total number of successful user collection loads",
	})

	UserStatusTogglesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "user_status_toggles_total",
		Help: "Total number of account status toggles",
	})

	ProfileLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "profile_loads_total",
		Help: "Total number of profile loads by source",
	}, []string{"source"})

	CartMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Total number of cart mutations by operation",
	}, []string{"op"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
