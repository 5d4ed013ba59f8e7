package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/internal/domain/category"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/pagination"
)

const categoriesTable = "categories"

var categorySortColumns = map[string]clause.Column{
	"id":   {Table: categoriesTable, Name: "id"},
	"name": {Table: categoriesTable, Name: "name"},
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := &CategoryModel{Name: c.Name, Description: c.Description}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return category.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}
	c.ID = model.ID
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var model CategoryModel
	err := r.query(ctx).Where(clause.Eq{Column: categorySortColumns["id"], Value: id}).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

func (r *categoryRepository) List(ctx context.Context, p pagination.Pageable) ([]*category.Category, int64, error) {
	var total int64
	if err := r.query(ctx).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询分类总数失败")
	}

	var models []CategoryModel
	err := r.query(ctx).
		Scopes(sortBy(p, categorySortColumns, pagination.Order{Property: "id"}), paginate(p)).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询分类列表失败")
	}

	out := make([]*category.Category, len(models))
	for i := range models {
		out[i] = toCategoryEntity(&models[i])
	}
	return out, total, nil
}

func (r *categoryRepository) CountByIDs(ctx context.Context, ids []uint) (int64, error) {
	var n int64
	if err := r.query(ctx).Where("categories.id IN ?", ids).Count(&n).Error; err != nil {
		return 0, apperrors.Wrap(err, "查询分类失败")
	}
	return n, nil
}

func (r *categoryRepository) query(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).Model(&CategoryModel{}).Scopes(notDeleted(categoriesTable))
}

func toCategoryEntity(m *CategoryModel) *category.Category {
	return &category.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		IsDeleted:   m.IsDeleted,
	}
}
