package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// CartReader 读取用户购物车
type CartReader interface {
	FindByUserID(ctx context.Context, userID uint) (*cart.ShoppingCart, error)
}

// BookReader 批量读取图书当前价格
type BookReader interface {
	FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error)
}

// Converter 把购物车内容转换为订单明细
type Converter struct {
	carts CartReader
	books BookReader
}

// NewConverter 创建转换器
func NewConverter(carts CartReader, books BookReader) *Converter {
	return &Converter{carts: carts, books: books}
}

// Fill 用用户购物车填充订单明细并重算总价
// 明细价格按图书当前价格计算；购物车不存在返回cart.ErrCartNotFound，为空返回ErrEmptyCart
func (c *Converter) Fill(ctx context.Context, userID uint, o *Order) (*cart.ShoppingCart, error) {
	// 1. 读取购物车
	sc, err := c.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sc.IsEmpty() {
		return nil, ErrEmptyCart
	}

	// 2. 一次查询加载所有图书
	ids := make([]uint, 0, len(sc.Items))
	for _, item := range sc.Items {
		ids = append(ids, item.BookID)
	}
	books, err := c.books.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*book.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	// 3. 逐条生成明细
	items := make([]OrderItem, 0, len(sc.Items))
	for _, ci := range sc.Items {
		b, ok := byID[ci.BookID]
		if !ok {
			return nil, book.NotFound(ci.BookID)
		}
		price, err := LinePrice(b.Price, ci.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, OrderItem{
			OrderID:  o.ID,
			BookID:   ci.BookID,
			Quantity: ci.Quantity,
			Price:    price,
		})
	}

	// 4. 绑定到订单并重算总价
	o.Items = items
	o.RecalculateTotal()
	return sc, nil
}
