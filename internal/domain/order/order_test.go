package order

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLinePrice(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		quantity int
		want     string
	}{
		{"整数数量", "5.00", 2, "10"},
		{"单件", "3.50", 1, "3.5"},
		{"超过两位小数仍精确", "0.333", 3, "0.999"},
		{"浮点不友好的值", "0.1", 3, "0.3"},
		{"零价格", "0", 7, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LinePrice(dec(tt.unit), tt.quantity)
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}

	t.Run("数量非正数", func(t *testing.T) {
		_, err := LinePrice(dec("1"), 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		_, err = LinePrice(dec("1"), -2)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestOrder_Advance(t *testing.T) {
	o := NewOrder(1, "Kyiv")
	require.Equal(t, StatusPending, o.Status)

	tr, err := o.Advance()
	require.NoError(t, err)
	assert.Equal(t, Transition{From: StatusPending, To: StatusDelivered}, tr)

	tr, err = o.Advance()
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, tr.To)
	assert.False(t, o.IsDeleted)

	// 终态再推进:软删除，状态不变
	tr, err = o.Advance()
	require.NoError(t, err)
	assert.True(t, tr.Deleted)
	assert.True(t, o.IsDeleted)
	assert.Equal(t, StatusCompleted, o.Status)

	_, err = o.Advance()
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrder_AdvanceUnknownStatusDeletes(t *testing.T) {
	o := &Order{Status: StatusDeleted}
	tr, err := o.Advance()
	require.NoError(t, err)
	assert.True(t, tr.Deleted)
	assert.True(t, o.IsDeleted)
}

func TestOrder_RecalculateTotal(t *testing.T) {
	o := NewOrder(1, "addr")
	assert.True(t, o.RecalculateTotal().IsZero())

	o.Items = []OrderItem{{Price: dec("10.00")}, {Price: dec("3.50")}, {Price: dec("0.005")}}
	assert.True(t, dec("13.505").Equal(o.RecalculateTotal()))
	assert.True(t, dec("13.505").Equal(o.Total))
}

func TestOrder_FindItem(t *testing.T) {
	o := &Order{ID: 1, Items: []OrderItem{{ID: 5, OrderID: 1}}}

	item, err := o.FindItem(5)
	require.NoError(t, err)
	assert.Equal(t, uint(5), item.ID)

	_, err = o.FindItem(6)
	assert.ErrorIs(t, err, ErrOrderItemNotFound)
	assert.True(t, apperrors.IsNotFound(err))
}

// stub readers

type cartStub map[uint]*cart.ShoppingCart

func (s cartStub) FindByUserID(_ context.Context, userID uint) (*cart.ShoppingCart, error) {
	if c, ok := s[userID]; ok {
		return c, nil
	}
	return nil, cart.ErrCartNotFound
}

type bookStub []*book.Book

func (s bookStub) FindByIDs(_ context.Context, ids []uint) ([]*book.Book, error) {
	var out []*book.Book
	for _, b := range s {
		for _, id := range ids {
			if b.ID == id {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

func TestConverter_Fill(t *testing.T) {
	books := bookStub{
		{ID: 1, Title: "A", Price: dec("5.00")},
		{ID: 2, Title: "B", Price: dec("3.50")},
	}
	carts := cartStub{
		7: {ID: 70, UserID: 7, Items: []cart.CartItem{
			{ID: 1, ShoppingCartID: 70, BookID: 1, Quantity: 2},
			{ID: 2, ShoppingCartID: 70, BookID: 2, Quantity: 1},
		}},
		8: {ID: 80, UserID: 8},
		9: {ID: 90, UserID: 9, Items: []cart.CartItem{{ID: 3, BookID: 404, Quantity: 1}}},
	}
	conv := NewConverter(carts, books)

	t.Run("购物车转订单", func(t *testing.T) {
		o := NewOrder(7, "addr")
		o.ID = 11

		sc, err := conv.Fill(context.Background(), 7, o)
		require.NoError(t, err)
		assert.Equal(t, uint(70), sc.ID)

		require.Len(t, o.Items, 2)
		assert.True(t, dec("10.00").Equal(o.Items[0].Price))
		assert.True(t, dec("3.50").Equal(o.Items[1].Price))
		assert.Equal(t, uint(11), o.Items[0].OrderID)
		assert.True(t, dec("13.50").Equal(o.Total))
	})

	t.Run("购物车不存在", func(t *testing.T) {
		_, err := conv.Fill(context.Background(), 1, NewOrder(1, "addr"))
		assert.ErrorIs(t, err, cart.ErrCartNotFound)
	})

	t.Run("空购物车", func(t *testing.T) {
		o := NewOrder(8, "addr")
		_, err := conv.Fill(context.Background(), 8, o)
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Empty(t, o.Items)
	})

	t.Run("图书已下架", func(t *testing.T) {
		_, err := conv.Fill(context.Background(), 9, NewOrder(9, "addr"))
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}
