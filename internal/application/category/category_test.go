package category

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/category"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookshop/pkg/pagination"
)

func TestCategoryUseCase(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	cats := memory.NewCategoryRepository(store)
	books := book.NewService(memory.NewBookRepository(store), cats)
	uc := NewCategoryUseCase(cats, books)

	fiction, err := uc.Create(ctx, CreateCategoryRequest{Name: " Fiction "})
	require.NoError(t, err)
	assert.Equal(t, "Fiction", fiction.Name)

	_, err = uc.Create(ctx, CreateCategoryRequest{Name: "Fiction"})
	assert.ErrorIs(t, err, category.ErrNameDuplicate)

	history, err := uc.Create(ctx, CreateCategoryRequest{Name: "History"})
	require.NoError(t, err)

	_, err = books.Create(ctx, book.Details{Title: "Dune", Author: "Herbert", ISBN: "1", Price: decimal.NewFromInt(10), CategoryIDs: []uint{fiction.ID}})
	require.NoError(t, err)
	_, err = books.Create(ctx, book.Details{Title: "SPQR", Author: "Beard", ISBN: "2", Price: decimal.NewFromInt(20), CategoryIDs: []uint{history.ID, fiction.ID}})
	require.NoError(t, err)

	page, err := uc.Books(ctx, history.ID, pagination.Of(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "SPQR", page.Content[0].Title)

	page, err = uc.Books(ctx, fiction.ID, pagination.Of(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	_, err = uc.Books(ctx, 999, pagination.Of(1, 10))
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)

	list, err := uc.List(ctx, pagination.Of(1, 10, pagination.Order{Property: "name", Desc: true}))
	require.NoError(t, err)
	require.Len(t, list.Content, 2)
	assert.Equal(t, "History", list.Content[0].Name)

	got, err := uc.Get(ctx, fiction.ID)
	require.NoError(t, err)
	assert.Equal(t, fiction.ID, got.ID)
}
