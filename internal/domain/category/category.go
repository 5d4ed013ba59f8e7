package category

import (
	"context"
	"strings"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/pagination"
)

// Category 图书分类
type Category struct {
	ID          uint
	Name        string
	Description string
	IsDeleted   bool
}

var (
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")
	ErrNameDuplicate    = apperrors.New(apperrors.ErrCodeDuplicateEntry, "分类名称已存在")
)

// SortProperties 分类列表允许的排序字段
var SortProperties = []string{"id", "name"}

// NewCategory 创建分类
func NewCategory(name, description string) *Category {
	return &Category{
		Name:        strings.TrimSpace(name),
		Description: description,
	}
}

// Repository 分类仓储，读取方法不返回已软删除的分类
type Repository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	List(ctx context.Context, p pagination.Pageable) ([]*Category, int64, error)

	// CountByIDs 统计存在的分类数量，用于校验图书引用的分类
	CountByIDs(ctx context.Context, ids []uint) (int64, error)
}
