// Package category 分类查询与维护用例
package category

import (
	"context"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/category"
	"github.com/xiebiao/bookshop/pkg/pagination"
)

// CategoryDTO 分类输出
type CategoryDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateCategoryRequest 新建分类
type CreateCategoryRequest struct {
	Name        string
	Description string
}

// CategoryUseCase 分类用例
type CategoryUseCase struct {
	repo        category.Repository
	bookService book.Service
}

// NewCategoryUseCase 创建分类用例
func NewCategoryUseCase(repo category.Repository, bookService book.Service) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, bookService: bookService}
}

func (uc *CategoryUseCase) List(ctx context.Context, p pagination.Pageable) (pagination.Result[CategoryDTO], error) {
	cats, total, err := uc.repo.List(ctx, p)
	if err != nil {
		return pagination.Result[CategoryDTO]{}, err
	}
	return pagination.Map(pagination.NewResult(cats, total, p), toDTO), nil
}

func (uc *CategoryUseCase) Get(ctx context.Context, id uint) (*CategoryDTO, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(c)
	return &dto, nil
}

// Create 名称重复返回ErrNameDuplicate
func (uc *CategoryUseCase) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryDTO, error) {
	c := category.NewCategory(req.Name, req.Description)
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	dto := toDTO(c)
	return &dto, nil
}

// Books 分类下的图书，分类不存在返回ErrCategoryNotFound
func (uc *CategoryUseCase) Books(ctx context.Context, id uint, p pagination.Pageable) (pagination.Result[appbook.BookDTO], error) {
	if _, err := uc.repo.FindByID(ctx, id); err != nil {
		return pagination.Result[appbook.BookDTO]{}, err
	}

	books, total, err := uc.bookService.ListByCategory(ctx, id, p)
	if err != nil {
		return pagination.Result[appbook.BookDTO]{}, err
	}
	return pagination.Map(pagination.NewResult(books, total, p), appbook.ToBookDTO), nil
}

func toDTO(c *category.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, Description: c.Description}
}
