package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/memory"
)

func setup(t *testing.T) (*CartUseCase, uint, uint) {
	store := memory.NewStore()
	books := memory.NewBookRepository(store)

	dune := &book.Book{Title: "Dune", Author: "Herbert", ISBN: "1", Price: decimal.NewFromInt(5)}
	emma := &book.Book{Title: "Emma", Author: "Austen", ISBN: "2", Price: decimal.RequireFromString("3.50")}
	require.NoError(t, books.Create(context.Background(), dune))
	require.NoError(t, books.Create(context.Background(), emma))

	return NewCartUseCase(memory.NewCartRepository(store), books), dune.ID, emma.ID
}

func TestCartUseCase_AddMergesSameBook(t *testing.T) {
	ctx := context.Background()
	uc, dune, emma := setup(t)

	empty, err := uc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	_, err = uc.AddItem(ctx, 1, dune, 1)
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, 1, emma, 1)
	require.NoError(t, err)
	c, err := uc.AddItem(ctx, 1, dune, 1)
	require.NoError(t, err)

	require.Len(t, c.Items, 2)
	assert.Equal(t, empty.ID, c.ID)
	assert.Equal(t, "Dune", c.Items[0].BookTitle)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 1, c.Items[1].Quantity)
}

func TestCartUseCase_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	uc, dune, _ := setup(t)

	c, err := uc.AddItem(ctx, 1, dune, 1)
	require.NoError(t, err)
	itemID := c.Items[0].ID

	c, err = uc.UpdateItem(ctx, 1, itemID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Items[0].Quantity)

	_, err = uc.UpdateItem(ctx, 1, itemID, 0)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

	// 其他用户看不到这个条目
	err = uc.RemoveItem(ctx, 2, itemID)
	assert.ErrorIs(t, err, cart.ErrCartItemNotFound)

	require.NoError(t, uc.RemoveItem(ctx, 1, itemID))
	c, err = uc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestCartUseCase_AddErrors(t *testing.T) {
	ctx := context.Background()
	uc, dune, _ := setup(t)

	_, err := uc.AddItem(ctx, 1, 999, 1)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	_, err = uc.AddItem(ctx, 1, dune, -1)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
}
