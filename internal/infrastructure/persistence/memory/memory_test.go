package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/pagination"
)

func newBook(title, author, isbn, price string) *book.Book {
	return &book.Book{Title: title, Author: author, ISBN: isbn, Price: decimal.RequireFromString(price)}
}

func TestBookRepository_ListAndSort(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(NewStore())

	for _, b := range []*book.Book{
		newBook("Dune", "Herbert", "1", "10"),
		newBook("Emma", "Austen", "2", "8"),
		newBook("Ulysses", "Joyce", "3", "12"),
	} {
		require.NoError(t, repo.Create(ctx, b))
	}

	books, total, err := repo.List(ctx, pagination.Of(1, 2, pagination.Order{Property: "price", Desc: true}))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, books, 2)
	assert.Equal(t, "Ulysses", books[0].Title)
	assert.Equal(t, "Dune", books[1].Title)

	assert.ErrorIs(t, repo.Create(ctx, newBook("Copy", "X", "1", "1")), book.ErrISBNDuplicate)
}

func TestBookRepository_SoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(NewStore())

	b := newBook("Dune", "Herbert", "1", "10")
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.SoftDelete(ctx, b.ID))
	require.NoError(t, repo.SoftDelete(ctx, 4242))

	_, err := repo.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	found, err := repo.FindByIDs(ctx, []uint{b.ID})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestBookRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(NewStore())

	b := newBook("Dune", "Herbert", "1", "10")
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	got.Title = "changed"

	again, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", again.Title)
}

func TestTxManager_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tx := NewTxManager(store)
	orders := NewOrderRepository(store)

	boom := errors.New("boom")
	err := tx.Transaction(ctx, func(ctx context.Context) error {
		require.NoError(t, orders.Create(ctx, order.NewOrder(1, "addr")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, total, err := orders.ListByUserID(ctx, 1, pagination.Of(1, 10))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)

	require.NoError(t, tx.Transaction(ctx, func(ctx context.Context) error {
		return orders.Create(ctx, order.NewOrder(1, "addr"))
	}))
	_, total, err = orders.ListByUserID(ctx, 1, pagination.Of(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestTxManager_RollbackKeepsWritesOutsideTransaction(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tx := NewTxManager(store)
	books := NewBookRepository(store)
	carts := NewCartRepository(store)

	sc := cart.NewShoppingCart(7)
	require.NoError(t, carts.Create(ctx, sc))
	require.NoError(t, carts.SaveItem(ctx, &cart.CartItem{ShoppingCartID: sc.ID, BookID: 1, Quantity: 2}))

	boom := errors.New("boom")
	err := tx.Transaction(ctx, func(txCtx context.Context) error {
		require.NoError(t, carts.ClearItems(txCtx, sc.ID))

		// 其他请求在事务进行中提交的写入
		done := make(chan error, 1)
		go func() { done <- books.Create(ctx, newBook("Dune", "Herbert", "999", "10")) }()
		require.NoError(t, <-done)

		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, total, err := books.List(ctx, pagination.Of(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	restored, err := carts.FindByUserID(ctx, 7)
	require.NoError(t, err)
	require.Len(t, restored.Items, 1)
	assert.Equal(t, 2, restored.Items[0].Quantity)
}

func TestTxManager_NestedJoinsOuter(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tx := NewTxManager(store)
	orders := NewOrderRepository(store)

	boom := errors.New("boom")
	err := tx.Transaction(ctx, func(txCtx context.Context) error {
		require.NoError(t, tx.Transaction(txCtx, func(inner context.Context) error {
			return orders.Create(inner, order.NewOrder(1, "addr"))
		}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, total, err := orders.ListByUserID(ctx, 1, pagination.Of(1, 10))
	require.NoError(t, err)
	assert.Zero(t, total)
}
