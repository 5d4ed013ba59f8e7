package user

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

var (
	ErrUserNotFound   = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")
	ErrInvalidEmail   = apperrors.Validation(apperrors.FieldError{Field: "email", Message: "邮箱格式不正确"})
	ErrWeakPassword   = apperrors.Validation(apperrors.FieldError{Field: "password", Message: "密码长度应为6-20位"})

	// ErrPasswordMismatch 两次输入的密码不一致
	ErrPasswordMismatch = apperrors.ErrFieldMismatch.
				WithMessage("两次输入的密码不一致").
				WithFields(apperrors.FieldError{Field: "repeat_password", Message: "必须与password一致"})
)
