package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/pagination"
)

var registerOnce sync.Once

// RegisterValidators 注册自定义校验规则，并让错误字段名使用json tag
// 注册失败时panic，否则带notblank标签的请求会在校验时panic
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("binding validator is not go-playground/validator")
		}
		if err := registerValidators(v); err != nil {
			panic(fmt.Sprintf("register validators: %v", err))
		}
	})
}

func registerValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v.RegisterValidation("notblank", notBlank)
}

// notBlank 字符串去掉空白后不能为空
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return field.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !field.IsNil()
	default:
		return !field.IsZero()
	}
}

// bindJSON 绑定并校验请求体
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return translateBindError(err)
	}
	return nil
}

// translateBindError 校验错误转为字段级错误，其余视为格式错误
func translateBindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperrors.FieldError{
				Field:   fieldPath(fe),
				Message: fieldMessage(fe),
			})
		}
		return apperrors.Validation(fields...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperrors.Validation(apperrors.FieldError{Field: typeErr.Field, Message: "类型错误"})
	}
	return apperrors.ErrBindError.WithMessage("参数格式错误: %v", err)
}

// fieldPath 去掉最外层结构体名，例如 BookRequest.category_ids[0] -> category_ids[0]
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "不能为空"
	case "email":
		return "邮箱格式不正确"
	case "url":
		return "URL格式不正确"
	case "min":
		return "长度不能小于" + fe.Param()
	case "max":
		return "长度不能大于" + fe.Param()
	case "gt":
		return "必须大于" + fe.Param()
	default:
		return "校验失败: " + fe.Tag()
	}
}

// parseID 解析路径中的正整数ID
func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation(apperrors.FieldError{Field: name, Message: "必须是正整数"})
	}
	return uint(id), nil
}

// parsePage 解析 page、size、sort 查询参数
func parsePage(c *gin.Context, sortable []string) (pagination.Pageable, error) {
	return pagination.Parse(c.Query("page"), c.Query("size"), c.QueryArray("sort"), sortable...)
}

// multiQuery 支持重复参数和逗号分隔两种写法：?title=a&title=b 或 ?title=a,b
func multiQuery(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
