package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(ctx context.Context, c *cart.ShoppingCart) error {
	model := &ShoppingCartModel{UserID: c.UserID}
	for _, item := range c.Items {
		model.Items = append(model.Items, CartItemModel{BookID: item.BookID, Quantity: item.Quantity})
	}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return cart.ErrDuplicateCart
		}
		return apperrors.Wrap(err, "创建购物车失败")
	}

	c.ID = model.ID
	for i := range c.Items {
		c.Items[i].ID = model.Items[i].ID
		c.Items[i].ShoppingCartID = model.ID
	}
	return nil
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	var model ShoppingCartModel
	err := dbFromContext(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id") }).
		Where("user_id = ?", userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartEntity(&model), nil
}

// SaveItem ID为0时插入，否则更新数量
func (r *cartRepository) SaveItem(ctx context.Context, item *cart.CartItem) error {
	db := dbFromContext(ctx, r.db)

	if item.ID == 0 {
		model := &CartItemModel{ShoppingCartID: item.ShoppingCartID, BookID: item.BookID, Quantity: item.Quantity}
		if err := db.Create(model).Error; err != nil {
			return apperrors.Wrap(err, "保存购物车条目失败")
		}
		item.ID = model.ID
		return nil
	}

	result := db.Model(&CartItemModel{}).
		Where("id = ? AND shopping_cart_id = ?", item.ID, item.ShoppingCartID).
		Update("quantity", item.Quantity)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "保存购物车条目失败")
	}
	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID, itemID uint) error {
	result := dbFromContext(ctx, r.db).
		Where("id = ? AND shopping_cart_id = ?", itemID, cartID).
		Delete(&CartItemModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) ClearItems(ctx context.Context, cartID uint) error {
	err := dbFromContext(ctx, r.db).
		Where("shopping_cart_id = ?", cartID).
		Delete(&CartItemModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

func toCartEntity(m *ShoppingCartModel) *cart.ShoppingCart {
	c := &cart.ShoppingCart{ID: m.ID, UserID: m.UserID}
	for _, item := range m.Items {
		c.Items = append(c.Items, cart.CartItem{
			ID:             item.ID,
			ShoppingCartID: item.ShoppingCartID,
			BookID:         item.BookID,
			Quantity:       item.Quantity,
		})
	}
	return c
}
