package book

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Book 图书实体(聚合根)
// 价格使用decimal保存，避免浮点误差；ISBN由数据库唯一索引保证唯一
type Book struct {
	ID          uint
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []uint
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Details 创建/更新图书时可写的字段
type Details struct {
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []uint
}

// Validate 业务规则:价格不能为负
func (d Details) Validate() error {
	if d.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// NewBook 创建新图书(工厂方法)
func NewBook(d Details) (*Book, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	b := &Book{CreatedAt: now}
	b.apply(d, now)
	return b, nil
}

// Replace 用新数据整体替换图书内容，保留ID和创建时间
func (b *Book) Replace(d Details) error {
	if err := d.Validate(); err != nil {
		return err
	}
	b.apply(d, time.Now())
	return nil
}

func (b *Book) apply(d Details, now time.Time) {
	b.Title = strings.TrimSpace(d.Title)
	b.Author = strings.TrimSpace(d.Author)
	b.ISBN = strings.TrimSpace(d.ISBN)
	b.Price = d.Price
	b.Description = d.Description
	b.CoverImage = d.CoverImage
	b.CategoryIDs = uniqueIDs(d.CategoryIDs)
	b.UpdatedAt = now
}

func uniqueIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
