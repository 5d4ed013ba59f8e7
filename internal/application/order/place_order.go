package order

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/logger"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

// Transactor 事务执行器，事务通过context传递给仓储
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 订单事件发布
// 在事务提交之后调用，发布失败只记录日志
type EventPublisher interface {
	OrderPlaced(ctx context.Context, evt order.PlacedEvent) error
	OrderStatusChanged(ctx context.Context, evt order.StatusChangedEvent) error
}

// PlaceOrderUseCase 下单用例:把当前用户的购物车转换为订单
type PlaceOrderUseCase struct {
	tx        Transactor
	orders    order.Repository
	carts     cart.Repository
	converter *order.Converter
	events    EventPublisher
}

// NewPlaceOrderUseCase 创建下单用例
func NewPlaceOrderUseCase(
	tx Transactor,
	orders order.Repository,
	carts cart.Repository,
	converter *order.Converter,
	events EventPublisher,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		tx:        tx,
		orders:    orders,
		carts:     carts,
		converter: converter,
		events:    events,
	}
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	UserID          uint // 从JWT中提取
	ShippingAddress string
}

// Execute 执行下单
// 整个流程在一个事务内:任一步失败时订单不会留下，购物车保持原样
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (dto *OrderDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, "PlaceOrderUseCase.Execute")
	start := time.Now()
	defer func() {
		result := "success"
		if err != nil {
			result = "failure"
		}
		metrics.IncCounterVec(metrics.OrdersPlacedTotal, prometheus.Labels{"result": result})
		metrics.ObserveHistogram(metrics.OrderPlacementDuration, time.Since(start).Seconds())
		tracing.EndSpan(span, err)
	}()

	o := order.NewOrder(req.UserID, req.ShippingAddress)

	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 创建空订单(待处理，总价0)
		if err := uc.orders.Create(txCtx, o); err != nil {
			return err
		}

		// 2. 用购物车填充明细，价格取图书当前价格
		sc, err := uc.converter.Fill(txCtx, req.UserID, o)
		if err != nil {
			return err
		}

		// 3. 保存明细和总价
		if err := uc.orders.SaveItems(txCtx, o); err != nil {
			return err
		}

		// 4. 清空购物车
		return uc.carts.ClearItems(txCtx, sc.ID)
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("order.id", int64(o.ID)),
		attribute.Int("order.items", len(o.Items)),
	)
	logger.FromCtx(ctx).Info("order placed",
		zap.Uint("order_id", o.ID),
		zap.Uint("user_id", o.UserID),
		zap.String("total", o.Total.StringFixed(2)),
	)

	if err := uc.events.OrderPlaced(ctx, order.NewPlacedEvent(o)); err != nil {
		logger.FromCtx(ctx).Warn("publish order placed failed", zap.Uint("order_id", o.ID), zap.Error(err))
	}

	result := toOrderDTO(o)
	return &result, nil
}
