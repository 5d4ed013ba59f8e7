package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/internal/domain/order"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/pagination"
)

const ordersTable = "orders"

var orderSortColumns = map[string]clause.Column{
	"id":         {Table: ordersTable, Name: "id"},
	"order_date": {Table: ordersTable, Name: "order_date"},
	"total":      {Table: ordersTable, Name: "total"},
	"status":     {Table: ordersTable, Name: "status"},
}

// orderRepository 订单仓储实现(MySQL)
// 读取时Preload明细，写操作通过context参与事务
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

// SaveItems 插入尚未保存的明细并更新总价
func (r *orderRepository) SaveItems(ctx context.Context, o *order.Order) error {
	db := dbFromContext(ctx, r.db)

	var fresh []OrderItemModel
	var idx []int
	for i, item := range o.Items {
		if item.ID == 0 {
			fresh = append(fresh, toOrderItemModel(o.ID, item))
			idx = append(idx, i)
		}
	}
	if len(fresh) > 0 {
		if err := db.Create(&fresh).Error; err != nil {
			return apperrors.Wrap(err, "保存订单明细失败")
		}
		for n, i := range idx {
			o.Items[i].ID = fresh[n].ID
			o.Items[i].OrderID = o.ID
		}
	}

	// 总价未变化时MySQL返回的影响行数为0，这里不据此判断订单是否存在
	err := db.Model(&OrderModel{}).
		Where(clause.Eq{Column: orderSortColumns["id"], Value: o.ID}).
		Update("total", o.Total).Error
	if err != nil {
		return apperrors.Wrap(err, "更新订单总价失败")
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := r.query(ctx).
		Preload("Items", orderItemsByID).
		Where(clause.Eq{Column: orderSortColumns["id"], Value: id}).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound.WithMessage("订单不存在, id: %d", id)
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// UpdateStatus 只更新状态和软删除标记
func (r *orderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	result := dbFromContext(ctx, r.db).
		Model(&OrderModel{}).
		Where(clause.Eq{Column: orderSortColumns["id"], Value: o.ID}).
		Scopes(notDeleted(ordersTable)).
		Updates(map[string]interface{}{
			"status":     string(o.Status),
			"is_deleted": o.IsDeleted,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID uint, p pagination.Pageable) ([]*order.Order, int64, error) {
	byUser := func(db *gorm.DB) *gorm.DB { return db.Where("orders.user_id = ?", userID) }

	var total int64
	if err := r.query(ctx).Scopes(byUser).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	var models []OrderModel
	err := r.query(ctx).
		Scopes(byUser, sortBy(p, orderSortColumns, pagination.Order{Property: "order_date", Desc: true}), paginate(p)).
		Preload("Items", orderItemsByID).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

func (r *orderRepository) query(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).Model(&OrderModel{}).Scopes(notDeleted(ordersTable))
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id")
}

// =========================================
// 模型转换
// =========================================

func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = toOrderItemModel(o.ID, item)
	}
	return &OrderModel{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		Total:           o.Total,
		OrderDate:       o.OrderDate,
		ShippingAddress: o.ShippingAddress,
		IsDeleted:       o.IsDeleted,
		Items:           items,
	}
}

func toOrderItemModel(orderID uint, item order.OrderItem) OrderItemModel {
	return OrderItemModel{
		ID:       item.ID,
		OrderID:  orderID,
		BookID:   item.BookID,
		Quantity: item.Quantity,
		Price:    item.Price,
	}
}

func toOrderEntity(m *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = order.OrderItem{
			ID:       item.ID,
			OrderID:  item.OrderID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}
	return &order.Order{
		ID:              m.ID,
		UserID:          m.UserID,
		Items:           items,
		Total:           m.Total,
		Status:          order.Status(m.Status),
		OrderDate:       m.OrderDate,
		ShippingAddress: m.ShippingAddress,
		IsDeleted:       m.IsDeleted,
	}
}
