package book

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/pkg/logger"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// Cache 图书详情缓存
// 缓存故障不影响读写，只记录日志
type Cache interface {
	Get(ctx context.Context, id uint) (*book.Book, bool, error)
	Set(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, id uint) error
}

// GetBookUseCase 图书详情查询（Cache-Aside）
type GetBookUseCase struct {
	bookService book.Service
	cache       Cache
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service, cache Cache) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService, cache: cache}
}

// Execute 先查缓存，未命中再查库并回填
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookDTO, error) {
	// 1. 查缓存
	cached, hit, err := uc.cache.Get(ctx, id)
	switch {
	case err != nil:
		recordCache("error")
		logger.FromCtx(ctx).Warn("read book cache failed", zap.Uint("book_id", id), zap.Error(err))
	case hit:
		recordCache("hit")
		dto := ToBookDTO(cached)
		return &dto, nil
	default:
		recordCache("miss")
	}

	// 2. 查库，不存在返回ErrBookNotFound
	b, err := uc.bookService.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. 回填缓存
	if err := uc.cache.Set(ctx, b); err != nil {
		logger.FromCtx(ctx).Warn("write book cache failed", zap.Uint("book_id", id), zap.Error(err))
	}

	dto := ToBookDTO(b)
	return &dto, nil
}

func recordCache(result string) {
	metrics.IncCounterVec(metrics.BookCacheRequests, prometheus.Labels{"result": result})
}

// NopCache 关闭缓存时使用，每次都未命中
type NopCache struct{}

func (NopCache) Get(context.Context, uint) (*book.Book, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, *book.Book) error               { return nil }
func (NopCache) Delete(context.Context, uint) error                  { return nil }
