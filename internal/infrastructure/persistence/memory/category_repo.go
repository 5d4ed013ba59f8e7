package memory

import (
	"cmp"
	"context"

	"github.com/xiebiao/bookshop/internal/domain/category"
	"github.com/xiebiao/bookshop/pkg/pagination"
)

type categoryRepository struct {
	s *Store
}

// NewCategoryRepository 创建内存分类仓储
func NewCategoryRepository(s *Store) category.Repository {
	return &categoryRepository{s: s}
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.categories {
		if existing.Name == c.Name {
			return category.ErrNameDuplicate
		}
	}
	c.ID = r.s.nextID()
	remember(ctx, r.s.categories, c.ID, cloneCategory)
	r.s.categories[c.ID] = cloneCategory(c)
	return nil
}

func (r *categoryRepository) FindByID(_ context.Context, id uint) (*category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok || c.IsDeleted {
		return nil, category.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *categoryRepository) List(_ context.Context, p pagination.Pageable) ([]*category.Category, int64, error) {
	r.s.mu.RLock()
	var all []*category.Category
	for _, c := range r.s.categories {
		if !c.IsDeleted {
			cp := *c
			all = append(all, &cp)
		}
	}
	r.s.mu.RUnlock()

	sortBy(all, p.Sorted(pagination.Order{Property: "id"}).Sort, func(a, b *category.Category, property string) int {
		if property == "name" {
			return cmp.Compare(a.Name, b.Name)
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return pagination.Window(all, p), int64(len(all)), nil
}

func (r *categoryRepository) CountByIDs(_ context.Context, ids []uint) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, id := range ids {
		if c, ok := r.s.categories[id]; ok && !c.IsDeleted {
			n++
		}
	}
	return n, nil
}
