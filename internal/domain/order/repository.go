package order

import (
	"context"

	"github.com/xiebiao/bookshop/pkg/pagination"
)

// SortProperties 订单历史允许的排序字段
var SortProperties = []string{"id", "order_date", "total", "status"}

// Repository 订单仓储，读取方法不返回已软删除的订单
// 写方法通过context中的事务执行
type Repository interface {
	// Create 保存订单头，回填ID
	Create(ctx context.Context, o *Order) error

	// SaveItems 保存订单明细并更新总价
	SaveItems(ctx context.Context, o *Order) error

	// FindByID 连同明细一起加载，不存在返回ErrOrderNotFound
	FindByID(ctx context.Context, id uint) (*Order, error)

	// UpdateStatus 持久化状态和软删除标记
	UpdateStatus(ctx context.Context, o *Order) error

	ListByUserID(ctx context.Context, userID uint, p pagination.Pageable) ([]*Order, int64, error)
}
