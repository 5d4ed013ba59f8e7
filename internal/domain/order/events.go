package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 订单事件的路由键
const (
	RoutingKeyPlaced        = "order.placed"
	RoutingKeyStatusChanged = "order.status_changed"
)

// PlacedEvent 下单成功事件，在事务提交后发布
type PlacedEvent struct {
	EventID    string          `json:"event_id"`
	OrderID    uint            `json:"order_id"`
	UserID     uint            `json:"user_id"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"item_count"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// StatusChangedEvent 订单状态推进事件
type StatusChangedEvent struct {
	EventID    string    `json:"event_id"`
	OrderID    uint      `json:"order_id"`
	From       Status    `json:"from"`
	To         Status    `json:"to"`
	Deleted    bool      `json:"deleted"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewPlacedEvent(o *Order) PlacedEvent {
	return PlacedEvent{
		EventID:    uuid.NewString(),
		OrderID:    o.ID,
		UserID:     o.UserID,
		Total:      o.Total,
		ItemCount:  len(o.Items),
		OccurredAt: time.Now(),
	}
}

func NewStatusChangedEvent(orderID uint, t Transition) StatusChangedEvent {
	return StatusChangedEvent{
		EventID:    uuid.NewString(),
		OrderID:    orderID,
		From:       t.From,
		To:         t.To,
		Deleted:    t.Deleted,
		OccurredAt: time.Now(),
	}
}
