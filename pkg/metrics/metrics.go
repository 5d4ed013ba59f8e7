// Package metrics 基于Prometheus的指标收集
//
// Counter 以 _total 结尾，Histogram 以单位结尾（_seconds）。
// 标签只使用有限取值的维度（method、status、result），不要用 user_id 之类的高基数字段。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// HTTPRequestsTotal HTTP请求总数，标签 method、path（路由模板）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// OrdersPlacedTotal 下单结果计数，标签 result（success/failure）
	OrdersPlacedTotal *prometheus.CounterVec

	// OrderPlacementDuration 下单耗时（含事务）
	OrderPlacementDuration prometheus.Histogram

	// OrderStatusTransitions 订单状态流转次数，标签 from、to
	OrderStatusTransitions *prometheus.CounterVec

	// BookCacheRequests 图书缓存命中情况，标签 result（hit/miss/error）
	BookCacheRequests *prometheus.CounterVec

	// MessagesPublishedTotal 消息发布总数，标签 routing_key、result
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标到默认Registry，可重复调用
func InitMetrics() {
	once.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		OrdersPlacedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_placed_total",
				Help: "下单总数",
			},
			[]string{"result"},
		)

		OrderPlacementDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "order_placement_duration_seconds",
				Help:    "下单耗时（秒）",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		)

		OrderStatusTransitions = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_status_transitions_total",
				Help: "订单状态流转次数",
			},
			[]string{"from", "to"},
		)

		BookCacheRequests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_cache_requests_total",
				Help: "图书详情缓存访问次数",
			},
			[]string{"result"},
		)

		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "消息发布总数",
			},
			[]string{"routing_key", "result"},
		)
	})
}

// 以下便捷函数在指标未初始化时什么都不做，单元测试无需注册指标

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels prometheus.Labels) {
	if counter != nil {
		counter.With(labels).Inc()
	}
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge != nil {
		gauge.Inc()
	}
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge != nil {
		gauge.Dec()
	}
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram != nil {
		histogram.Observe(value)
	}
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels prometheus.Labels, value float64) {
	if histogram != nil {
		histogram.With(labels).Observe(value)
	}
}
