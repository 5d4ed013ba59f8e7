package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/pkg/pagination"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

// ListBooksUseCase 图书列表与条件搜索
// 已软删除的图书不会出现在结果中
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// List 分页列出全部图书，默认按id升序
func (uc *ListBooksUseCase) List(ctx context.Context, p pagination.Pageable) (pagination.Result[BookDTO], error) {
	books, total, err := uc.bookService.List(ctx, p)
	if err != nil {
		return pagination.Result[BookDTO]{}, err
	}
	return toPage(books, total, p), nil
}

// Search 按标题、作者、ISBN组合条件搜索
// 同一字段多个值之间是OR，不同字段之间是AND；没有任何条件时等同于List
func (uc *ListBooksUseCase) Search(ctx context.Context, params book.SearchParams, p pagination.Pageable) (result pagination.Result[BookDTO], err error) {
	ctx, span := tracing.StartSpan(ctx, "ListBooksUseCase.Search",
		trace.WithAttributes(
			attribute.Int("search.titles", len(params.Titles)),
			attribute.Int("search.authors", len(params.Authors)),
			attribute.Bool("search.isbn", params.ISBN != ""),
		),
	)
	defer func() { tracing.EndSpan(span, err) }()

	books, total, err := uc.bookService.Search(ctx, params, p)
	if err != nil {
		return pagination.Result[BookDTO]{}, err
	}
	span.SetAttributes(attribute.Int64("search.total", total))
	return toPage(books, total, p), nil
}

func toPage(books []*book.Book, total int64, p pagination.Pageable) pagination.Result[BookDTO] {
	return pagination.Map(pagination.NewResult(books, total, p), ToBookDTO)
}
