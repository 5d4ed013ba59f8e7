package order

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/logger"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

// AdvanceStatusUseCase 推进订单状态（管理员）
// PENDING→DELIVERED→COMPLETED，已完成的订单再推进会被软删除
type AdvanceStatusUseCase struct {
	tx     Transactor
	orders order.Repository
	events EventPublisher
}

// NewAdvanceStatusUseCase 创建状态推进用例
func NewAdvanceStatusUseCase(tx Transactor, orders order.Repository, events EventPublisher) *AdvanceStatusUseCase {
	return &AdvanceStatusUseCase{tx: tx, orders: orders, events: events}
}

// Execute 推进一步并返回推进后的订单
// 订单不存在或已删除返回ErrOrderNotFound
func (uc *AdvanceStatusUseCase) Execute(ctx context.Context, orderID uint) (dto *OrderDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, "AdvanceStatusUseCase.Execute")
	span.SetAttributes(attribute.Int64("order.id", int64(orderID)))
	defer func() { tracing.EndSpan(span, err) }()

	var (
		o *order.Order
		t order.Transition
	)
	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		if o, err = uc.orders.FindByID(txCtx, orderID); err != nil {
			return err
		}
		if t, err = o.Advance(); err != nil {
			return err
		}
		return uc.orders.UpdateStatus(txCtx, o)
	})
	if err != nil {
		return nil, err
	}

	to := string(t.To)
	if t.Deleted {
		to = string(order.StatusDeleted)
	}
	metrics.IncCounterVec(metrics.OrderStatusTransitions, prometheus.Labels{"from": string(t.From), "to": to})
	logger.FromCtx(ctx).Info("order status advanced",
		zap.Uint("order_id", orderID),
		zap.String("from", string(t.From)),
		zap.String("to", to),
	)

	if err := uc.events.OrderStatusChanged(ctx, order.NewStatusChangedEvent(orderID, t)); err != nil {
		logger.FromCtx(ctx).Warn("publish order status changed failed", zap.Uint("order_id", orderID), zap.Error(err))
	}

	result := toOrderDTO(o)
	return &result, nil
}
