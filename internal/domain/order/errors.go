package order

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 订单领域错误定义
var (
	ErrOrderNotFound     = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")
	ErrOrderItemNotFound = apperrors.New(apperrors.ErrCodeOrderItemNotFound, "订单明细不存在")

	// ErrEmptyCart 购物车没有条目时不能下单
	ErrEmptyCart = apperrors.New(apperrors.ErrCodeEmptyCart, "购物车为空，无法下单")

	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidQuantity, "购买数量必须大于0")
)
