package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Сообщения об инвалидации каталога (Kafka).
var (
	InvalidationConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invalidation_messages_consumed_total",
			Help: "Number of invalidation messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	InvalidationProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invalidation_messages_processed_total",
			Help: "Number of invalidation messages applied successfully",
		},
		[]string{"topic"},
	)
	InvalidationFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invalidation_messages_failed_total",
			Help: "Number of invalidation messages failed to apply",
		},
		[]string{"topic"},
	)
)

// Кэш каталога.
var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Catalog cache operations",
		},
		[]string{"keyspace", "op"}, // keyspace: all|item|draft; op: hit|miss|expired|error|set|clear
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of keys currently held by the in-memory cache storage",
		},
	)
)

// Удалённый провайдер данных.
var (
	ProviderRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Requests to the remote data provider",
		},
		[]string{"table", "op", "status"},
	)
	ProviderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Latency of requests to the remote data provider",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table", "op"},
	)
	OrdersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_submitted_total",
			Help: "Orders submitted to the provider",
		},
		[]string{"result"}, // ok|error
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в глобальном реестре; повторные вызовы игнорируются.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			InvalidationConsumed, InvalidationProcessed, InvalidationFailed,
			CacheOps, CacheSize,
			ProviderRequests, ProviderDuration, OrdersSubmitted,
		)
	})
}
