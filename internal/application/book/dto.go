package book

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// BookDTO 图书输出
type BookDTO struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	ISBN        string          `json:"isbn"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"19.99"`
	Description string          `json:"description,omitempty"`
	CoverImage  string          `json:"cover_image,omitempty"`
	CategoryIDs []uint          `json:"category_ids"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BookRequest 创建/更新图书的输入，更新时整体替换
type BookRequest struct {
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []uint
}

func (r BookRequest) details() book.Details {
	return book.Details{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		Price:       r.Price,
		Description: r.Description,
		CoverImage:  r.CoverImage,
		CategoryIDs: r.CategoryIDs,
	}
}

// ToBookDTO 实体转DTO
func ToBookDTO(b *book.Book) BookDTO {
	ids := b.CategoryIDs
	if ids == nil {
		ids = []uint{}
	}
	return BookDTO{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Price:       b.Price,
		Description: b.Description,
		CoverImage:  b.CoverImage,
		CategoryIDs: ids,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
