package pagination

import (
	"math"
	"strconv"
	"strings"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

const (
	DefaultPage = 1
	DefaultSize = 20
	MaxSize     = 100

	// MaxPage 保证 (Page-1)*Size 不溢出
	MaxPage = math.MaxInt / MaxSize
)

// Order 单个排序条件
type Order struct {
	Property string
	Desc     bool
}

// Pageable 分页与排序参数，Page从1开始
type Pageable struct {
	Page int
	Size int
	Sort []Order
}

// Of 构造分页参数，非法值回落到默认值
func Of(page, size int, sort ...Order) Pageable {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Pageable{Page: page, Size: size, Sort: sort}
}

// Offset 计算偏移量
func (p Pageable) Offset() int {
	return (p.Page - 1) * p.Size
}

// Sorted 没有排序条件时使用默认排序
func (p Pageable) Sorted(defaults ...Order) Pageable {
	if len(p.Sort) == 0 {
		p.Sort = defaults
	}
	return p
}

// Parse 解析查询参数 page、size、sort
// sort 格式为 property[,asc|desc]，可重复；property 必须在 allowed 中
func Parse(page, size string, sorts []string, allowed ...string) (Pageable, error) {
	var fields []apperrors.FieldError

	p, err := parseInt(page, DefaultPage)
	if err != nil || p < 1 || p > MaxPage {
		fields = append(fields, apperrors.FieldError{Field: "page", Message: "页码必须在1-" + strconv.Itoa(MaxPage) + "之间"})
	}
	s, err := parseInt(size, DefaultSize)
	if err != nil || s < 1 || s > MaxSize {
		fields = append(fields, apperrors.FieldError{Field: "size", Message: "每页大小必须在1-" + strconv.Itoa(MaxSize) + "之间"})
	}

	var orders []Order
	for _, raw := range sorts {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		order, ok := parseOrder(raw, allowed)
		if !ok {
			fields = append(fields, apperrors.FieldError{Field: "sort", Message: "不支持的排序条件: " + raw})
			continue
		}
		orders = append(orders, order)
	}

	if len(fields) > 0 {
		return Pageable{}, apperrors.Validation(fields...)
	}
	return Of(p, s, orders...), nil
}

func parseInt(raw string, def int) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}
	return strconv.Atoi(strings.TrimSpace(raw))
}

func parseOrder(raw string, allowed []string) (Order, bool) {
	parts := strings.Split(raw, ",")
	order := Order{Property: strings.TrimSpace(parts[0])}
	if len(parts) > 2 {
		return Order{}, false
	}
	if len(parts) == 2 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "asc":
		case "desc":
			order.Desc = true
		default:
			return Order{}, false
		}
	}
	for _, a := range allowed {
		if a == order.Property {
			return order, true
		}
	}
	return Order{}, false
}

// Result 分页查询结果
type Result[T any] struct {
	Content []T
	Total   int64
	Page    int
	Size    int
}

// NewResult 构造分页结果
func NewResult[T any](content []T, total int64, p Pageable) Result[T] {
	if content == nil {
		content = []T{}
	}
	return Result[T]{Content: content, Total: total, Page: p.Page, Size: p.Size}
}

// Map 转换分页内容类型
func Map[T, R any](r Result[T], fn func(T) R) Result[R] {
	out := make([]R, 0, len(r.Content))
	for _, item := range r.Content {
		out = append(out, fn(item))
	}
	return Result[R]{Content: out, Total: r.Total, Page: r.Page, Size: r.Size}
}

// Window 对已排序的内存切片做分页截取
func Window[T any](items []T, p Pageable) []T {
	start := p.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + p.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
