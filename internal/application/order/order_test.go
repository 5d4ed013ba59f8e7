package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookshop/pkg/pagination"
)

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) OrderPlaced(ctx context.Context, evt order.PlacedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *mockEvents) OrderStatusChanged(ctx context.Context, evt order.StatusChangedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

type env struct {
	place   *PlaceOrderUseCase
	advance *AdvanceStatusUseCase
	query   *OrderQueryUseCase
	books   book.Repository
	carts   cart.Repository
	events  *mockEvents
}

func newEnv() *env {
	store := memory.NewStore()
	tx := memory.NewTxManager(store)
	books := memory.NewBookRepository(store)
	carts := memory.NewCartRepository(store)
	orders := memory.NewOrderRepository(store)
	events := new(mockEvents)

	return &env{
		place:   NewPlaceOrderUseCase(tx, orders, carts, order.NewConverter(carts, books), events),
		advance: NewAdvanceStatusUseCase(tx, orders, events),
		query:   NewOrderQueryUseCase(orders),
		books:   books,
		carts:   carts,
		events:  events,
	}
}

func (e *env) addBook(t *testing.T, isbn, price string) *book.Book {
	b := &book.Book{Title: "Book " + isbn, Author: "A", ISBN: isbn, Price: decimal.RequireFromString(price)}
	require.NoError(t, e.books.Create(context.Background(), b))
	return b
}

// fillCart 为用户创建购物车，quantities按图书顺序对应
func (e *env) fillCart(t *testing.T, userID uint, books []*book.Book, quantities []int) *cart.ShoppingCart {
	c := cart.NewShoppingCart(userID)
	for i, b := range books {
		_, err := c.AddItem(b.ID, quantities[i])
		require.NoError(t, err)
	}
	require.NoError(t, e.carts.Create(context.Background(), c))
	return c
}

func TestPlaceOrder_FromCart(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.addBook(t, "A", "5.00")
	b := e.addBook(t, "B", "3.50")
	e.fillCart(t, 1, []*book.Book{a, b}, []int{2, 1})

	e.events.On("OrderPlaced", mock.Anything, mock.MatchedBy(func(evt order.PlacedEvent) bool {
		return evt.UserID == 1 && evt.ItemCount == 2 && evt.Total.Equal(decimal.RequireFromString("13.50"))
	})).Return(nil).Once()

	dto, err := e.place.Execute(ctx, PlaceOrderRequest{UserID: 1, ShippingAddress: "Main St 1"})
	require.NoError(t, err)

	assert.Equal(t, "13.5", dto.Total.String())
	assert.Equal(t, string(order.StatusPending), dto.Status)
	assert.Equal(t, "Main St 1", dto.ShippingAddress)
	require.Len(t, dto.Items, 2)
	assert.True(t, dto.Items[0].Price.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, dto.Items[1].Price.Equal(decimal.RequireFromString("3.50")))

	sum := decimal.Zero
	for _, item := range dto.Items {
		sum = sum.Add(item.Price)
	}
	assert.True(t, sum.Equal(dto.Total))

	// 下单后购物车被清空
	c, err := e.carts.FindByUserID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	e.events.AssertExpectations(t)
}

func TestPlaceOrder_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("购物车不存在", func(t *testing.T) {
		e := newEnv()
		_, err := e.place.Execute(ctx, PlaceOrderRequest{UserID: 1})
		assert.ErrorIs(t, err, cart.ErrCartNotFound)
	})

	t.Run("购物车为空", func(t *testing.T) {
		e := newEnv()
		e.fillCart(t, 1, nil, nil)

		_, err := e.place.Execute(ctx, PlaceOrderRequest{UserID: 1})
		assert.ErrorIs(t, err, order.ErrEmptyCart)

		history, err := e.query.History(ctx, 1, pagination.Of(1, 20))
		require.NoError(t, err)
		assert.Empty(t, history.Content, "失败的下单不应留下订单")
	})

	t.Run("图书已下架时整体回滚", func(t *testing.T) {
		e := newEnv()
		a := e.addBook(t, "A", "5.00")
		b := e.addBook(t, "B", "3.50")
		e.fillCart(t, 1, []*book.Book{a, b}, []int{1, 1})
		require.NoError(t, e.books.SoftDelete(ctx, b.ID))

		_, err := e.place.Execute(ctx, PlaceOrderRequest{UserID: 1})
		assert.ErrorIs(t, err, book.ErrBookNotFound)

		c, err := e.carts.FindByUserID(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, c.Items, 2, "购物车保持原样")

		history, err := e.query.History(ctx, 1, pagination.Of(1, 20))
		require.NoError(t, err)
		assert.Zero(t, history.Total)
	})
}

func TestPlaceOrder_PublishFailureDoesNotFailRequest(t *testing.T) {
	e := newEnv()
	a := e.addBook(t, "A", "1.00")
	e.fillCart(t, 1, []*book.Book{a}, []int{1})
	e.events.On("OrderPlaced", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := e.place.Execute(context.Background(), PlaceOrderRequest{UserID: 1})
	assert.NoError(t, err)
}

func TestAdvanceStatus_Lifecycle(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.addBook(t, "A", "1.00")
	e.fillCart(t, 1, []*book.Book{a}, []int{1})
	e.events.On("OrderPlaced", mock.Anything, mock.Anything).Return(nil)
	e.events.On("OrderStatusChanged", mock.Anything, mock.Anything).Return(nil)

	placed, err := e.place.Execute(ctx, PlaceOrderRequest{UserID: 1})
	require.NoError(t, err)

	got, err := e.advance.Execute(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, string(order.StatusDelivered), got.Status)

	got, err = e.advance.Execute(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, string(order.StatusCompleted), got.Status)

	// 第三次推进软删除，状态不变
	got, err = e.advance.Execute(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, string(order.StatusCompleted), got.Status)

	_, err = e.advance.Execute(ctx, placed.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	_, err = e.query.Items(ctx, Viewer{UserID: 1}, placed.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	e.events.AssertNumberOfCalls(t, "OrderStatusChanged", 3)
}

func TestOrderQuery(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.addBook(t, "A", "5.00")
	b := e.addBook(t, "B", "3.50")
	e.events.On("OrderPlaced", mock.Anything, mock.Anything).Return(nil)

	e.fillCart(t, 1, []*book.Book{a, b}, []int{2, 1})
	first, err := e.place.Execute(ctx, PlaceOrderRequest{UserID: 1})
	require.NoError(t, err)

	c, err := e.carts.FindByUserID(ctx, 1)
	require.NoError(t, err)
	_, err = c.AddItem(a.ID, 1)
	require.NoError(t, err)
	require.NoError(t, e.carts.SaveItem(ctx, &c.Items[0]))
	second, err := e.place.Execute(ctx, PlaceOrderRequest{UserID: 1})
	require.NoError(t, err)

	t.Run("历史按下单时间倒序", func(t *testing.T) {
		page, err := e.query.History(ctx, 1, pagination.Of(1, 20))
		require.NoError(t, err)
		require.Len(t, page.Content, 2)
		assert.Equal(t, second.ID, page.Content[0].ID)
		assert.Equal(t, first.ID, page.Content[1].ID)
	})

	t.Run("订单明细", func(t *testing.T) {
		items, err := e.query.Items(ctx, Viewer{UserID: 1}, first.ID)
		require.NoError(t, err)
		assert.Len(t, items, 2)

		item, err := e.query.Item(ctx, Viewer{UserID: 1}, first.ID, items[1].ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, item.BookID)
	})

	t.Run("明细不属于该订单", func(t *testing.T) {
		_, err := e.query.Item(ctx, Viewer{UserID: 1}, first.ID, second.Items[0].ID)
		assert.ErrorIs(t, err, order.ErrOrderItemNotFound)
	})

	t.Run("其他用户不可见，管理员可见", func(t *testing.T) {
		_, err := e.query.Items(ctx, Viewer{UserID: 2}, first.ID)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)

		items, err := e.query.Items(ctx, Viewer{UserID: 2, IsAdmin: true}, first.ID)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})
}
