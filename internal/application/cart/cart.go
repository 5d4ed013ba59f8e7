// Package cart 购物车用例
package cart

import (
	"context"
	"errors"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// CartDTO 购物车输出
type CartDTO struct {
	ID     uint          `json:"id"`
	UserID uint          `json:"user_id"`
	Items  []CartItemDTO `json:"items"`
}

// CartItemDTO 购物车条目，BookTitle在图书已下架时为空
type CartItemDTO struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	BookTitle string `json:"book_title"`
	Quantity  int    `json:"quantity"`
}

// BookReader 读取图书
type BookReader interface {
	FindByID(ctx context.Context, id uint) (*book.Book, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error)
}

// CartUseCase 当前用户的购物车
// 购物车在首次使用时创建
type CartUseCase struct {
	carts cart.Repository
	books BookReader
}

// NewCartUseCase 创建购物车用例
func NewCartUseCase(carts cart.Repository, books BookReader) *CartUseCase {
	return &CartUseCase{carts: carts, books: books}
}

func (uc *CartUseCase) Get(ctx context.Context, userID uint) (*CartDTO, error) {
	c, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.toDTO(ctx, c)
}

// AddItem 加入图书，购物车里已有同一本书时累加数量
func (uc *CartUseCase) AddItem(ctx context.Context, userID, bookID uint, quantity int) (*CartDTO, error) {
	// 1. 图书必须存在且未删除
	if _, err := uc.books.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	// 2. 合并到购物车
	c, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	item, err := c.AddItem(bookID, quantity)
	if err != nil {
		return nil, err
	}

	// 3. 保存条目，新条目回填ID
	if err := uc.carts.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return uc.toDTO(ctx, c)
}

func (uc *CartUseCase) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*CartDTO, error) {
	c, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	item, err := c.UpdateQuantity(itemID, quantity)
	if err != nil {
		return nil, err
	}
	if err := uc.carts.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return uc.toDTO(ctx, c)
}

// RemoveItem 删除条目，只能删除自己购物车里的条目
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, itemID uint) error {
	c, err := uc.load(ctx, userID)
	if err != nil {
		return err
	}
	if err := c.RemoveItem(itemID); err != nil {
		return err
	}
	return uc.carts.DeleteItem(ctx, c.ID, itemID)
}

// load 读取用户购物车，不存在时创建
func (uc *CartUseCase) load(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	c, err := uc.carts.FindByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, cart.ErrCartNotFound) {
		return nil, err
	}

	c = cart.NewShoppingCart(userID)
	if err := uc.carts.Create(ctx, c); err != nil {
		// 并发请求已创建
		if errors.Is(err, cart.ErrDuplicateCart) {
			return uc.carts.FindByUserID(ctx, userID)
		}
		return nil, err
	}
	return c, nil
}

func (uc *CartUseCase) toDTO(ctx context.Context, c *cart.ShoppingCart) (*CartDTO, error) {
	ids := make([]uint, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.BookID)
	}
	books, err := uc.books.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	titles := make(map[uint]string, len(books))
	for _, b := range books {
		titles[b.ID] = b.Title
	}

	dto := &CartDTO{ID: c.ID, UserID: c.UserID, Items: make([]CartItemDTO, 0, len(c.Items))}
	for _, item := range c.Items {
		dto.Items = append(dto.Items, CartItemDTO{
			ID:        item.ID,
			BookID:    item.BookID,
			BookTitle: titles[item.BookID],
			Quantity:  item.Quantity,
		})
	}
	return dto, nil
}
