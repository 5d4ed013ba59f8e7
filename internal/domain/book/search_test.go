package book

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooks() []*Book {
	return []*Book{
		{ID: 1, Title: "Dune", Author: "Herbert", ISBN: "111", Price: decimal.NewFromInt(10)},
		{ID: 2, Title: "Emma", Author: "Austen", ISBN: "222", Price: decimal.NewFromInt(8)},
		{ID: 3, Title: "Dune", Author: "Anderson", ISBN: "333", Price: decimal.NewFromInt(12)},
		{ID: 4, Title: "Persuasion", Author: "Austen", ISBN: "444", Price: decimal.NewFromInt(9), IsDeleted: true},
	}
}

func matching(spec Specification, books []*Book) []uint {
	var ids []uint
	for _, b := range books {
		if spec.IsSatisfiedBy(b) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

func TestSpecificationBuilder_Build(t *testing.T) {
	builder := NewSpecificationBuilder()

	t.Run("空条件匹配全部未删除图书", func(t *testing.T) {
		spec := builder.Build(SearchParams{})
		assert.True(t, spec.IsEmpty())
		assert.Equal(t, []uint{1, 2, 3}, matching(spec, sampleBooks()))
	})

	t.Run("空白值被忽略", func(t *testing.T) {
		spec := builder.Build(SearchParams{Titles: []string{" ", ""}, ISBN: "  "})
		assert.True(t, spec.IsEmpty())
	})

	t.Run("单字段多值为IN语义", func(t *testing.T) {
		spec := builder.Build(SearchParams{Titles: []string{"Dune", "Emma"}})
		require.Len(t, spec.Predicates, 1)
		assert.Equal(t, FieldTitle, spec.Predicates[0].Field)
		assert.Equal(t, []uint{1, 2, 3}, matching(spec, sampleBooks()))
	})

	t.Run("多字段取交集", func(t *testing.T) {
		spec := builder.Build(SearchParams{Titles: []string{"Dune"}, Authors: []string{"Herbert", "Austen"}})
		require.Len(t, spec.Predicates, 2)
		assert.Equal(t, []uint{1}, matching(spec, sampleBooks()))
	})

	t.Run("ISBN精确匹配", func(t *testing.T) {
		spec := builder.Build(SearchParams{ISBN: "333"})
		assert.Equal(t, []uint{3}, matching(spec, sampleBooks()))
	})

	t.Run("已删除图书即使字段匹配也被排除", func(t *testing.T) {
		spec := builder.Build(SearchParams{Authors: []string{"Austen"}})
		assert.Equal(t, []uint{2}, matching(spec, sampleBooks()))
	})
}

func TestSpecificationBuilder_Register(t *testing.T) {
	builder := NewSpecificationBuilder()
	builder.Register(FieldAuthor, func(values []string) Predicate {
		return Predicate{Field: FieldAuthor, Values: append(values, "Anderson")}
	})

	spec := builder.Build(SearchParams{Authors: []string{"Herbert"}})
	assert.Equal(t, []uint{1, 3}, matching(spec, sampleBooks()))
	// 替换不会改变字段顺序
	assert.Equal(t, []Field{FieldTitle, FieldAuthor, FieldISBN}, builder.order)
}
