package book

import (
	"context"

	"github.com/xiebiao/bookshop/pkg/pagination"
)

// SortProperties 列表/搜索允许的排序字段
var SortProperties = []string{"id", "title", "author", "price", "isbn"}

// Repository 图书仓储接口
// 所有读取方法都不返回已软删除的图书
type Repository interface {
	Create(ctx context.Context, book *Book) error

	// FindByID 不存在时返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查询，缺失的ID直接忽略
	FindByIDs(ctx context.Context, ids []uint) ([]*Book, error)

	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 整体更新（含分类关联）
	Update(ctx context.Context, book *Book) error

	// SoftDelete 标记删除，ID不存在时不报错
	SoftDelete(ctx context.Context, id uint) error

	List(ctx context.Context, p pagination.Pageable) ([]*Book, int64, error)

	// Search 按规约查询，空规约等价于List
	Search(ctx context.Context, spec Specification, p pagination.Pageable) ([]*Book, int64, error)

	ListByCategory(ctx context.Context, categoryID uint, p pagination.Pageable) ([]*Book, int64, error)
}

// CategoryLookup 校验分类是否存在（由分类仓储实现）
type CategoryLookup interface {
	CountByIDs(ctx context.Context, ids []uint) (int64, error)
}
