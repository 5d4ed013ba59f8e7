package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

// OrderDTO 订单输出
type OrderDTO struct {
	ID              uint            `json:"id"`
	UserID          uint            `json:"user_id"`
	Items           []OrderItemDTO  `json:"items"`
	Total           decimal.Decimal `json:"total" swaggertype:"string" example:"13.50"`
	Status          string          `json:"status"`
	OrderDate       time.Time       `json:"order_date"`
	ShippingAddress string          `json:"shipping_address"`
}

// OrderItemDTO 订单明细输出，Price为该行总价
type OrderItemDTO struct {
	ID       uint            `json:"id"`
	BookID   uint            `json:"book_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price" swaggertype:"string" example:"10.00"`
}

// Viewer 查询订单的当前用户
type Viewer struct {
	UserID  uint
	IsAdmin bool
}

func toOrderDTO(o *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, toItemDTO(item))
	}
	return OrderDTO{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           items,
		Total:           o.Total,
		Status:          string(o.Status),
		OrderDate:       o.OrderDate,
		ShippingAddress: o.ShippingAddress,
	}
}

func toItemDTO(item order.OrderItem) OrderItemDTO {
	return OrderItemDTO{
		ID:       item.ID,
		BookID:   item.BookID,
		Quantity: item.Quantity,
		Price:    item.Price,
	}
}
