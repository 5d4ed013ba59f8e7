package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/pkg/logger"
)

// ManageBookUseCase 图书维护（管理员）
// 写库成功后删除详情缓存，下次读取时回填
type ManageBookUseCase struct {
	bookService book.Service
	cache       Cache
}

// NewManageBookUseCase 创建图书维护用例
func NewManageBookUseCase(bookService book.Service, cache Cache) *ManageBookUseCase {
	return &ManageBookUseCase{bookService: bookService, cache: cache}
}

// Create 新增图书
// ISBN重复返回ErrISBNDuplicate，价格为负返回ErrInvalidPrice，分类不存在返回ErrCategoryNotFound
func (uc *ManageBookUseCase) Create(ctx context.Context, req BookRequest) (*BookDTO, error) {
	b, err := uc.bookService.Create(ctx, req.details())
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("book created", zap.Uint("book_id", b.ID), zap.String("isbn", b.ISBN))
	dto := ToBookDTO(b)
	return &dto, nil
}

// Update 整体替换图书内容，ID和创建时间不变
func (uc *ManageBookUseCase) Update(ctx context.Context, id uint, req BookRequest) (*BookDTO, error) {
	b, err := uc.bookService.Update(ctx, id, req.details())
	if err != nil {
		return nil, err
	}
	uc.evict(ctx, id)

	dto := ToBookDTO(b)
	return &dto, nil
}

// Delete 软删除，图书不存在时同样返回成功
func (uc *ManageBookUseCase) Delete(ctx context.Context, id uint) error {
	if err := uc.bookService.Delete(ctx, id); err != nil {
		return err
	}
	uc.evict(ctx, id)
	return nil
}

func (uc *ManageBookUseCase) evict(ctx context.Context, id uint) {
	if err := uc.cache.Delete(ctx, id); err != nil {
		logger.FromCtx(ctx).Warn("evict book cache failed", zap.Uint("book_id", id), zap.Error(err))
	}
}
