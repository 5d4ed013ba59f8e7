package dto

import (
	"github.com/shopspring/decimal"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
)

// BookRequest 创建/更新图书
// 更新时整体替换，未传的可选字段会被清空
type BookRequest struct {
	Title       string           `json:"title" binding:"notblank,max=255" example:"Go语言实战"`
	Author      string           `json:"author" binding:"notblank,max=255" example:"威廉·肯尼迪"`
	ISBN        string           `json:"isbn" binding:"notblank,max=32" example:"9787115428028"`
	Price       *decimal.Decimal `json:"price" binding:"required" swaggertype:"string" example:"59.00"`
	Description string           `json:"description" binding:"max=5000" example:"这是一本关于Go语言的实战书籍"`
	CoverImage  string           `json:"cover_image" binding:"omitempty,url,max=500" example:"https://example.com/cover.jpg"`
	CategoryIDs []uint           `json:"category_ids" binding:"omitempty,dive,gt=0" example:"1,2"`
}

// ToApp 转换为应用层请求
func (r BookRequest) ToApp() appbook.BookRequest {
	price := decimal.Zero
	if r.Price != nil {
		price = *r.Price
	}
	return appbook.BookRequest{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		Price:       price,
		Description: r.Description,
		CoverImage:  r.CoverImage,
		CategoryIDs: r.CategoryIDs,
	}
}

// CategoryRequest 新建分类
type CategoryRequest struct {
	Name        string `json:"name" binding:"notblank,max=100" example:"小说"`
	Description string `json:"description" binding:"max=500"`
}
