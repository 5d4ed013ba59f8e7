package handler

import (
	"github.com/gin-gonic/gin"

	appcategory "github.com/xiebiao/bookshop/internal/application/category"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/category"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	categoryUseCase *appcategory.CategoryUseCase
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(categoryUseCase *appcategory.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{categoryUseCase: categoryUseCase}
}

// List 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        size query int false "每页大小" default(20)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appcategory.CategoryDTO}}
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	p, err := parsePage(c, category.SortProperties)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.categoryUseCase.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, result)
}

// Get 分类详情
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=appcategory.CategoryDTO}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.categoryUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Books 分类下的图书
// @Summary      分类下的图书
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        page query int false "页码" default(1)
// @Param        size query int false "每页大小" default(20)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookDTO}}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id}/books [get]
func (h *CategoryHandler) Books(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	p, err := parsePage(c, book.SortProperties)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.categoryUseCase.Books(c.Request.Context(), id, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, result)
}

// Create 新建分类
// @Summary      新建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CategoryRequest true "分类信息"
// @Success      201 {object} response.Response{data=appcategory.CategoryDTO}
// @Failure      409 {object} response.Response "名称已存在"
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.categoryUseCase.Create(c.Request.Context(), appcategory.CreateCategoryRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}
