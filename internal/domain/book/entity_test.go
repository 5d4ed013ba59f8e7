package book

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	t.Run("正常创建", func(t *testing.T) {
		b, err := NewBook(Details{
			Title:       "  Dune ",
			Author:      "Herbert",
			ISBN:        "978-0441013593",
			Price:       decimal.RequireFromString("9.99"),
			CategoryIDs: []uint{3, 1, 3},
		})
		require.NoError(t, err)
		assert.Equal(t, "Dune", b.Title)
		assert.Equal(t, []uint{3, 1}, b.CategoryIDs)
		assert.False(t, b.CreatedAt.IsZero())
	})

	t.Run("价格可以为0", func(t *testing.T) {
		_, err := NewBook(Details{Title: "Free", Author: "A", ISBN: "1", Price: decimal.Zero})
		assert.NoError(t, err)
	})

	t.Run("负价格被拒绝", func(t *testing.T) {
		_, err := NewBook(Details{Title: "X", Author: "A", ISBN: "1", Price: decimal.RequireFromString("-0.01")})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestBook_Replace(t *testing.T) {
	b, err := NewBook(Details{Title: "Old", Author: "A", ISBN: "1", Price: decimal.NewFromInt(1), CategoryIDs: []uint{1}})
	require.NoError(t, err)
	b.ID = 42
	created := b.CreatedAt

	require.NoError(t, b.Replace(Details{Title: "New", Author: "B", ISBN: "2", Price: decimal.NewFromInt(2)}))

	assert.Equal(t, uint(42), b.ID)
	assert.Equal(t, created, b.CreatedAt)
	assert.Equal(t, "New", b.Title)
	assert.Empty(t, b.CategoryIDs)
	assert.True(t, decimal.NewFromInt(2).Equal(b.Price))
}
