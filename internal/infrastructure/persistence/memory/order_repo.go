package memory

import (
	"cmp"
	"context"

	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/pagination"
)

type orderRepository struct {
	s *Store
}

// NewOrderRepository 创建内存订单仓储
func NewOrderRepository(s *Store) order.Repository {
	return &orderRepository{s: s}
}

func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o.ID = r.s.nextID()
	r.assignItemIDs(o)
	remember(ctx, r.s.orders, o.ID, cloneOrder)
	r.s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *orderRepository) SaveItems(ctx context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.orders[o.ID]
	if !ok || current.IsDeleted {
		return order.ErrOrderNotFound
	}
	remember(ctx, r.s.orders, o.ID, cloneOrder)
	r.assignItemIDs(o)
	current.Items = append([]order.OrderItem(nil), o.Items...)
	current.Total = o.Total
	return nil
}

func (r *orderRepository) FindByID(_ context.Context, id uint) (*order.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[id]
	if !ok || o.IsDeleted {
		return nil, order.ErrOrderNotFound.WithMessage("订单不存在, id: %d", id)
	}
	return cloneOrder(o), nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.orders[o.ID]
	if !ok || current.IsDeleted {
		return order.ErrOrderNotFound
	}
	remember(ctx, r.s.orders, o.ID, cloneOrder)
	current.Status = o.Status
	current.IsDeleted = o.IsDeleted
	return nil
}

func (r *orderRepository) ListByUserID(_ context.Context, userID uint, p pagination.Pageable) ([]*order.Order, int64, error) {
	r.s.mu.RLock()
	var all []*order.Order
	for _, o := range r.s.orders {
		if o.UserID == userID && !o.IsDeleted {
			all = append(all, cloneOrder(o))
		}
	}
	r.s.mu.RUnlock()

	sortBy(all, p.Sorted(pagination.Order{Property: "order_date", Desc: true}).Sort, compareOrders)
	return pagination.Window(all, p), int64(len(all)), nil
}

// assignItemIDs 为新明细分配ID，调用方需持有写锁
func (r *orderRepository) assignItemIDs(o *order.Order) {
	for i := range o.Items {
		if o.Items[i].ID == 0 {
			o.Items[i].ID = r.s.nextID()
		}
		o.Items[i].OrderID = o.ID
	}
}

func compareOrders(a, b *order.Order, property string) int {
	switch property {
	case "order_date":
		return a.OrderDate.Compare(b.OrderDate)
	case "total":
		return a.Total.Cmp(b.Total)
	case "status":
		return cmp.Compare(a.Status, b.Status)
	default:
		return cmp.Compare(a.ID, b.ID)
	}
}
