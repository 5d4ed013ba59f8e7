package book

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 图书领域错误定义
var (
	ErrBookNotFound  = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	ErrInvalidPrice = apperrors.Validation(apperrors.FieldError{Field: "price", Message: "价格不能为负数"})

	// ErrCategoryNotFound 图书引用了不存在的分类
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")
)

// NotFound 带ID信息的图书不存在错误
func NotFound(id uint) error {
	return ErrBookNotFound.WithMessage("图书不存在, id: %d", id)
}
