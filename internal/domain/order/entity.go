package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status 订单状态
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusDelivered Status = "DELIVERED"
	StatusCompleted Status = "COMPLETED"
	StatusDeleted   Status = "DELETED"
)

// nextStatus 状态流转表，没有后续状态的订单在推进时被软删除
var nextStatus = map[Status]Status{
	StatusPending:   StatusDelivered,
	StatusDelivered: StatusCompleted,
}

// Order 订单实体(聚合根)
// Total 是最近一次 RecalculateTotal 时明细价格之和，之后不自动同步
type Order struct {
	ID              uint
	UserID          uint
	Items           []OrderItem
	Total           decimal.Decimal
	Status          Status
	OrderDate       time.Time
	ShippingAddress string
	IsDeleted       bool
}

// OrderItem 订单明细
// Price 是下单时 单价×数量 的快照
type OrderItem struct {
	ID       uint
	OrderID  uint
	BookID   uint
	Quantity int
	Price    decimal.Decimal
}

// Transition 一次状态推进的结果
type Transition struct {
	From    Status
	To      Status
	Deleted bool // 终态订单被软删除，To与From相同
}

// NewOrder 创建空订单:待处理，总价为0
func NewOrder(userID uint, shippingAddress string) *Order {
	return &Order{
		UserID:          userID,
		Total:           decimal.Zero,
		Status:          StatusPending,
		OrderDate:       time.Now(),
		ShippingAddress: shippingAddress,
	}
}

// Advance 推进订单状态
// PENDING→DELIVERED→COMPLETED，再往后软删除订单且状态不变
func (o *Order) Advance() (Transition, error) {
	if o.IsDeleted {
		return Transition{}, ErrOrderNotFound
	}

	t := Transition{From: o.Status}
	if next, ok := nextStatus[o.Status]; ok {
		o.Status = next
		t.To = next
		return t, nil
	}

	o.IsDeleted = true
	t.To = o.Status
	t.Deleted = true
	return t, nil
}

// RecalculateTotal 按明细价格重算总价
func (o *Order) RecalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price)
	}
	o.Total = total
	return total
}

// FindItem 在订单明细中查找
func (o *Order) FindItem(itemID uint) (*OrderItem, error) {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i], nil
		}
	}
	return nil, ErrOrderItemNotFound.WithMessage("订单明细不存在, id: %d", itemID)
}

// IsOwnedBy 订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}
