package memory

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/cart"
)

type cartRepository struct {
	s *Store
}

// NewCartRepository 创建内存购物车仓储
func NewCartRepository(s *Store) cart.Repository {
	return &cartRepository{s: s}
}

func (r *cartRepository) Create(ctx context.Context, c *cart.ShoppingCart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.byUser(c.UserID) != nil {
		return cart.ErrDuplicateCart
	}
	c.ID = r.s.nextID()
	for i := range c.Items {
		c.Items[i].ID = r.s.nextID()
		c.Items[i].ShoppingCartID = c.ID
	}
	remember(ctx, r.s.carts, c.ID, cloneCart)
	r.s.carts[c.ID] = cloneCart(c)
	return nil
}

func (r *cartRepository) FindByUserID(_ context.Context, userID uint) (*cart.ShoppingCart, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c := r.byUser(userID)
	if c == nil {
		return nil, cart.ErrCartNotFound
	}
	return cloneCart(c), nil
}

func (r *cartRepository) SaveItem(ctx context.Context, item *cart.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.carts[item.ShoppingCartID]
	if !ok {
		return cart.ErrCartNotFound
	}
	remember(ctx, r.s.carts, c.ID, cloneCart)
	if item.ID == 0 {
		item.ID = r.s.nextID()
		c.Items = append(c.Items, *item)
		return nil
	}
	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			c.Items[i] = *item
			return nil
		}
	}
	return cart.ErrCartItemNotFound
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID, itemID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.carts[cartID]
	if !ok {
		return cart.ErrCartNotFound
	}
	remember(ctx, r.s.carts, cartID, cloneCart)
	return c.RemoveItem(itemID)
}

func (r *cartRepository) ClearItems(ctx context.Context, cartID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if c, ok := r.s.carts[cartID]; ok {
		remember(ctx, r.s.carts, cartID, cloneCart)
		c.Clear()
	}
	return nil
}

// byUser 调用方需持有锁
func (r *cartRepository) byUser(userID uint) *cart.ShoppingCart {
	for _, c := range r.s.carts {
		if c.UserID == userID {
			return c
		}
	}
	return nil
}
