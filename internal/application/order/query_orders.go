package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/pagination"
)

// OrderQueryUseCase 订单查询
// 普通用户只能看到自己的订单，别人的订单按不存在处理
type OrderQueryUseCase struct {
	orders order.Repository
}

// NewOrderQueryUseCase 创建订单查询用例
func NewOrderQueryUseCase(orders order.Repository) *OrderQueryUseCase {
	return &OrderQueryUseCase{orders: orders}
}

// History 用户的订单历史，默认按下单时间倒序
func (uc *OrderQueryUseCase) History(ctx context.Context, userID uint, p pagination.Pageable) (pagination.Result[OrderDTO], error) {
	orders, total, err := uc.orders.ListByUserID(ctx, userID, p)
	if err != nil {
		return pagination.Result[OrderDTO]{}, err
	}
	return pagination.Map(pagination.NewResult(orders, total, p), toOrderDTO), nil
}

// Items 订单的全部明细
func (uc *OrderQueryUseCase) Items(ctx context.Context, viewer Viewer, orderID uint) ([]OrderItemDTO, error) {
	o, err := uc.load(ctx, viewer, orderID)
	if err != nil {
		return nil, err
	}
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, toItemDTO(item))
	}
	return items, nil
}

// Item 订单中的单条明细，明细不属于该订单返回ErrOrderItemNotFound
func (uc *OrderQueryUseCase) Item(ctx context.Context, viewer Viewer, orderID, itemID uint) (*OrderItemDTO, error) {
	o, err := uc.load(ctx, viewer, orderID)
	if err != nil {
		return nil, err
	}
	item, err := o.FindItem(itemID)
	if err != nil {
		return nil, err
	}
	dto := toItemDTO(*item)
	return &dto, nil
}

func (uc *OrderQueryUseCase) load(ctx context.Context, viewer Viewer, orderID uint) (*order.Order, error) {
	o, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !viewer.IsAdmin && !o.IsOwnedBy(viewer.UserID) {
		return nil, order.ErrOrderNotFound.WithMessage("订单不存在, id: %d", orderID)
	}
	return o, nil
}
