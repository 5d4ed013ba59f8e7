package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
}

func newContext(method, target, body string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindJSON(t *testing.T) {
	t.Run("字段错误使用json名称", func(t *testing.T) {
		c := newContext(http.MethodPost, "/", `{"title":" ","author":"A","isbn":"1","price":"1.00","category_ids":[0]}`)
		var req dto.BookRequest
		err := bindJSON(c, &req)
		require.Error(t, err)

		appErr := apperrors.GetAppError(err)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
		assert.Equal(t, []apperrors.FieldError{
			{Field: "title", Message: "不能为空"},
			{Field: "category_ids[0]", Message: "必须大于0"},
		}, appErr.Fields)
	})

	t.Run("类型错误", func(t *testing.T) {
		c := newContext(http.MethodPost, "/", `{"book_id":"x","quantity":1}`)
		var req dto.CartItemRequest
		err := bindJSON(c, &req)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.GetAppError(err).Code)
	})

	t.Run("非法JSON", func(t *testing.T) {
		c := newContext(http.MethodPost, "/", `{"title":`)
		var req dto.BookRequest
		err := bindJSON(c, &req)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeBindError, apperrors.GetAppError(err).Code)
	})

	t.Run("价格接受数字和字符串", func(t *testing.T) {
		for _, price := range []string{`12.5`, `"12.50"`} {
			c := newContext(http.MethodPost, "/", `{"title":"T","author":"A","isbn":"1","price":`+price+`}`)
			var req dto.BookRequest
			require.NoError(t, bindJSON(c, &req))
			assert.Equal(t, "12.5", req.ToApp().Price.String())
		}
	})
}

func TestRegisterValidators(t *testing.T) {
	v := validator.New()
	require.NoError(t, registerValidators(v))

	assert.Error(t, v.Var(" \t", "notblank"))
	assert.Error(t, v.Var([]int{}, "notblank"))
	assert.NoError(t, v.Var("Dune", "notblank"))

	assert.NotPanics(t, RegisterValidators)
}

func TestMultiQuery(t *testing.T) {
	c := newContext(http.MethodGet, "/?title=Dune,%20Emma&title=Ulysses&title=&author=", "")

	assert.Equal(t, []string{"Dune", "Emma", "Ulysses"}, multiQuery(c, "title"))
	assert.Empty(t, multiQuery(c, "author"))
	assert.Empty(t, multiQuery(c, "isbn"))
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint
		wantErr bool
	}{
		{raw: "42", want: 42},
		{raw: "0", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := newContext(http.MethodGet, "/", "")
			c.Params = gin.Params{{Key: "id", Value: tt.raw}}

			id, err := parseID(c, "id")
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "id", apperrors.GetAppError(err).Fields[0].Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestParsePage(t *testing.T) {
	c := newContext(http.MethodGet, "/?page=2&size=5&sort=title,desc&sort=id", "")

	p, err := parsePage(c, []string{"id", "title"})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 5, p.Size)
	require.Len(t, p.Sort, 2)
	assert.True(t, p.Sort[0].Desc)
}
