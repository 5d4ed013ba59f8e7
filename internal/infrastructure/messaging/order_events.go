// Package messaging 领域事件的发布适配
package messaging

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/logger"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// Publisher 消息发布能力，由pkg/mq.Publisher实现
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// OrderEvents 把订单事件发布到消息队列
type OrderEvents struct {
	pub Publisher
}

// NewOrderEvents 创建订单事件发布器
func NewOrderEvents(pub Publisher) *OrderEvents {
	return &OrderEvents{pub: pub}
}

func (e *OrderEvents) OrderPlaced(ctx context.Context, evt order.PlacedEvent) error {
	return e.publish(ctx, order.RoutingKeyPlaced, evt)
}

func (e *OrderEvents) OrderStatusChanged(ctx context.Context, evt order.StatusChangedEvent) error {
	return e.publish(ctx, order.RoutingKeyStatusChanged, evt)
}

func (e *OrderEvents) publish(ctx context.Context, routingKey string, evt interface{}) error {
	err := e.pub.Publish(ctx, routingKey, evt)

	result := "success"
	if err != nil {
		result = "failure"
		logger.FromCtx(ctx).Warn("publish order event failed",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, prometheus.Labels{
		"routing_key": routingKey,
		"result":      result,
	})
	return err
}

// NoopOrderEvents 未启用消息队列时使用，事件只记日志
type NoopOrderEvents struct{}

func (NoopOrderEvents) OrderPlaced(ctx context.Context, evt order.PlacedEvent) error {
	logger.FromCtx(ctx).Debug("order placed", zap.Uint("order_id", evt.OrderID))
	return nil
}

func (NoopOrderEvents) OrderStatusChanged(ctx context.Context, evt order.StatusChangedEvent) error {
	logger.FromCtx(ctx).Debug("order status changed",
		zap.Uint("order_id", evt.OrderID),
		zap.String("from", string(evt.From)),
		zap.String("to", string(evt.To)),
	)
	return nil
}
