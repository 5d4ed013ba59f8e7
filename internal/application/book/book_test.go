package book

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/category"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/pagination"
)

type fixture struct {
	list   *ListBooksUseCase
	get    *GetBookUseCase
	manage *ManageBookUseCase
	cats   category.Repository
}

func newFixture(cache Cache) *fixture {
	store := memory.NewStore()
	cats := memory.NewCategoryRepository(store)
	svc := book.NewService(memory.NewBookRepository(store), cats)
	if cache == nil {
		cache = memory.NewBookCache(time.Minute)
	}
	return &fixture{
		list:   NewListBooksUseCase(svc),
		get:    NewGetBookUseCase(svc, cache),
		manage: NewManageBookUseCase(svc, cache),
		cats:   cats,
	}
}

func request(title, author, isbn, price string) BookRequest {
	return BookRequest{
		Title:  title,
		Author: author,
		ISBN:   isbn,
		Price:  decimal.RequireFromString(price),
	}
}

func TestBookLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)

	created, err := f.manage.Create(ctx, request("Dune", "Herbert", "111", "9.99"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := f.get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.True(t, created.Price.Equal(got.Price))

	require.NoError(t, f.manage.Delete(ctx, created.ID))

	_, err = f.get.Execute(ctx, created.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	page, err := f.list.List(ctx, pagination.Of(1, 20))
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, int64(0), page.Total)
}

func TestManageBook_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)

	_, err := f.manage.Create(ctx, request("Dune", "Herbert", "111", "9.99"))
	require.NoError(t, err)

	t.Run("ISBN重复", func(t *testing.T) {
		_, err := f.manage.Create(ctx, request("Other", "X", "111", "1"))
		assert.ErrorIs(t, err, book.ErrISBNDuplicate)
	})

	t.Run("价格为负", func(t *testing.T) {
		_, err := f.manage.Create(ctx, request("Neg", "X", "222", "-1"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidParams)
	})

	t.Run("分类不存在", func(t *testing.T) {
		req := request("Cat", "X", "333", "1")
		req.CategoryIDs = []uint{99}
		_, err := f.manage.Create(ctx, req)
		assert.ErrorIs(t, err, book.ErrCategoryNotFound)
	})

	t.Run("更新不存在的图书", func(t *testing.T) {
		_, err := f.manage.Update(ctx, 42, request("X", "Y", "444", "1"))
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("删除不存在的图书不报错", func(t *testing.T) {
		assert.NoError(t, f.manage.Delete(ctx, 42))
	})
}

func TestManageBook_UpdateEvictsCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)

	require.NoError(t, f.cats.Create(ctx, category.NewCategory("Sci-Fi", "")))

	created, err := f.manage.Create(ctx, request("Dune", "Herbert", "111", "9.99"))
	require.NoError(t, err)

	// 读一次写入缓存
	_, err = f.get.Execute(ctx, created.ID)
	require.NoError(t, err)

	req := request("Dune Messiah", "Frank Herbert", "111", "12.50")
	req.CategoryIDs = []uint{1, 1}
	updated, err := f.manage.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, []uint{1}, updated.CategoryIDs)

	got, err := f.get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", got.Title)
	assert.Equal(t, "12.5", got.Price.String())
}

func TestListBooks_Search(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)

	for _, r := range []BookRequest{
		request("Dune", "Herbert", "111", "10"),
		request("Emma", "Austen", "222", "8"),
		request("Dune", "Anderson", "333", "12"),
	} {
		_, err := f.manage.Create(ctx, r)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		params book.SearchParams
		want   []string
	}{
		{"无条件返回全部", book.SearchParams{}, []string{"111", "222", "333"}},
		{"按标题", book.SearchParams{Titles: []string{"Dune"}}, []string{"111", "333"}},
		{"标题与作者取交集", book.SearchParams{Titles: []string{"Dune"}, Authors: []string{"Herbert"}}, []string{"111"}},
		{"同字段多值取并集", book.SearchParams{Authors: []string{"Austen", "Anderson"}}, []string{"222", "333"}},
		{"按ISBN", book.SearchParams{ISBN: "222"}, []string{"222"}},
		{"无匹配", book.SearchParams{Titles: []string{"Dune"}, ISBN: "222"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.list.Search(ctx, tt.params, pagination.Of(1, 20))
			require.NoError(t, err)

			var isbns []string
			for _, b := range page.Content {
				isbns = append(isbns, b.ISBN)
			}
			assert.Equal(t, tt.want, isbns)
			assert.Equal(t, int64(len(tt.want)), page.Total)
		})
	}
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, id uint) (*book.Book, bool, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, b *book.Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func TestGetBook_CacheFailureFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	cache := new(mockCache)
	f := newFixture(cache)

	down := errors.New("redis down")
	cache.On("Get", ctx, mock.Anything).Return(nil, false, down)
	cache.On("Set", ctx, mock.Anything).Return(down)
	cache.On("Delete", ctx, mock.Anything).Return(down)

	created, err := f.manage.Create(ctx, request("Dune", "Herbert", "111", "9.99"))
	require.NoError(t, err)

	got, err := f.get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)

	assert.NoError(t, f.manage.Delete(ctx, created.ID))
	cache.AssertCalled(t, "Delete", ctx, created.ID)
}

func TestGetBook_CacheHitSkipsStore(t *testing.T) {
	ctx := context.Background()
	cache := new(mockCache)
	f := newFixture(cache)

	cache.On("Get", ctx, uint(7)).Return(&book.Book{ID: 7, Title: "Cached"}, true, nil)

	got, err := f.get.Execute(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Cached", got.Title)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}
