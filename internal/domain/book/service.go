package book

import (
	"context"
	"errors"

	"github.com/xiebiao/bookshop/pkg/pagination"
)

// Service 图书领域服务
type Service interface {
	// Create 创建图书，ISBN重复返回ErrISBNDuplicate
	Create(ctx context.Context, d Details) (*Book, error)

	Get(ctx context.Context, id uint) (*Book, error)

	// Update 整体替换图书内容，图书不存在返回ErrBookNotFound
	Update(ctx context.Context, id uint, d Details) (*Book, error)

	// Delete 软删除，图书不存在时不报错
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, p pagination.Pageable) ([]*Book, int64, error)

	Search(ctx context.Context, params SearchParams, p pagination.Pageable) ([]*Book, int64, error)

	ListByCategory(ctx context.Context, categoryID uint, p pagination.Pageable) ([]*Book, int64, error)
}

type service struct {
	repo       Repository
	categories CategoryLookup
	specs      *SpecificationBuilder
}

// NewService 创建图书领域服务
func NewService(repo Repository, categories CategoryLookup) Service {
	return &service{
		repo:       repo,
		categories: categories,
		specs:      NewSpecificationBuilder(),
	}
}

func (s *service) Create(ctx context.Context, d Details) (*Book, error) {
	b, err := NewBook(d)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategories(ctx, b.CategoryIDs); err != nil {
		return nil, err
	}
	if err := s.checkISBN(ctx, b.ISBN, 0); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id uint, d Details) (*Book, error) {
	// 1. 图书必须存在
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 替换内容并校验
	if err := b.Replace(d); err != nil {
		return nil, err
	}
	if err := s.checkCategories(ctx, b.CategoryIDs); err != nil {
		return nil, err
	}
	if err := s.checkISBN(ctx, b.ISBN, b.ID); err != nil {
		return nil, err
	}

	// 3. 持久化
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *service) List(ctx context.Context, p pagination.Pageable) ([]*Book, int64, error) {
	return s.repo.List(ctx, p)
}

func (s *service) Search(ctx context.Context, params SearchParams, p pagination.Pageable) ([]*Book, int64, error) {
	return s.repo.Search(ctx, s.specs.Build(params), p)
}

func (s *service) ListByCategory(ctx context.Context, categoryID uint, p pagination.Pageable) ([]*Book, int64, error) {
	return s.repo.ListByCategory(ctx, categoryID, p)
}

// checkISBN ISBN不能被其他图书占用
func (s *service) checkISBN(ctx context.Context, isbn string, selfID uint) error {
	existing, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrISBNDuplicate
	}
	return nil
}

func (s *service) checkCategories(ctx context.Context, ids []uint) error {
	if len(ids) == 0 || s.categories == nil {
		return nil
	}
	n, err := s.categories.CountByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return ErrCategoryNotFound
	}
	return nil
}
