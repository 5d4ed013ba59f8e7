package cart

import (
	"context"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// ShoppingCart 购物车(聚合根)，每个用户一个
type ShoppingCart struct {
	ID     uint
	UserID uint
	Items  []CartItem
}

// CartItem 购物车条目，只持有所属购物车的ID
type CartItem struct {
	ID             uint
	ShoppingCartID uint
	BookID         uint
	Quantity       int
}

var (
	ErrCartNotFound     = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车不存在")
	ErrCartItemNotFound = apperrors.New(apperrors.ErrCodeCartItemNotFound, "购物车条目不存在")
	ErrInvalidQuantity  = apperrors.New(apperrors.ErrCodeInvalidQuantity, "数量必须大于0")
	ErrDuplicateCart    = apperrors.New(apperrors.ErrCodeDuplicateEntry, "购物车已存在")
)

// NewShoppingCart 创建空购物车
func NewShoppingCart(userID uint) *ShoppingCart {
	return &ShoppingCart{UserID: userID}
}

// IsEmpty 购物车是否为空
func (c *ShoppingCart) IsEmpty() bool {
	return len(c.Items) == 0
}

// AddItem 加入图书，同一本书合并数量，返回变更后的条目
func (c *ShoppingCart) AddItem(bookID uint, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			c.Items[i].Quantity += quantity
			return &c.Items[i], nil
		}
	}
	c.Items = append(c.Items, CartItem{ShoppingCartID: c.ID, BookID: bookID, Quantity: quantity})
	return &c.Items[len(c.Items)-1], nil
}

// UpdateQuantity 修改条目数量
func (c *ShoppingCart) UpdateQuantity(itemID uint, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	item := c.FindItem(itemID)
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	item.Quantity = quantity
	return item, nil
}

// RemoveItem 删除条目
func (c *ShoppingCart) RemoveItem(itemID uint) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return ErrCartItemNotFound
}

// FindItem 按ID查找条目
func (c *ShoppingCart) FindItem(itemID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// Clear 清空购物车
func (c *ShoppingCart) Clear() {
	c.Items = nil
}

// Repository 购物车仓储
type Repository interface {
	// Create 创建购物车（注册时调用）
	Create(ctx context.Context, c *ShoppingCart) error

	// FindByUserID 连同条目一起加载，不存在返回ErrCartNotFound
	FindByUserID(ctx context.Context, userID uint) (*ShoppingCart, error)

	// SaveItem 新增或更新条目，新增时回填ID
	SaveItem(ctx context.Context, item *CartItem) error

	DeleteItem(ctx context.Context, cartID, itemID uint) error

	// ClearItems 删除购物车所有条目
	ClearItems(ctx context.Context, cartID uint) error
}
