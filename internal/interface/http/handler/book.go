package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooksUseCase  *appbook.ListBooksUseCase
	getBookUseCase    *appbook.GetBookUseCase
	manageBookUseCase *appbook.ManageBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	manageBookUseCase *appbook.ManageBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooksUseCase:  listBooksUseCase,
		getBookUseCase:    getBookUseCase,
		manageBookUseCase: manageBookUseCase,
	}
}

// List 图书列表
// @Summary      图书列表
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        size query int false "每页大小" default(20)
// @Param        sort query []string false "排序: property[,asc|desc]" collectionFormat(multi)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookDTO}}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	p, err := parsePage(c, book.SortProperties)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.listBooksUseCase.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, result)
}

// Search 按标题、作者、ISBN搜索
// 同一字段多个值之间为OR，不同字段之间为AND
// @Summary      搜索图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        title query []string false "标题（可重复或逗号分隔）" collectionFormat(multi)
// @Param        author query []string false "作者（可重复或逗号分隔）" collectionFormat(multi)
// @Param        isbn query string false "ISBN"
// @Param        page query int false "页码" default(1)
// @Param        size query int false "每页大小" default(20)
// @Param        sort query []string false "排序: property[,asc|desc]" collectionFormat(multi)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookDTO}}
// @Router       /api/v1/books/search [get]
func (h *BookHandler) Search(c *gin.Context) {
	p, err := parsePage(c, book.SortProperties)
	if err != nil {
		response.Error(c, err)
		return
	}

	params := book.SearchParams{
		Titles:  multiQuery(c, "title"),
		Authors: multiQuery(c, "author"),
		ISBN:    c.Query("isbn"),
	}
	result, err := h.listBooksUseCase.Search(c.Request.Context(), params, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, result)
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookDTO}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, b)
}

// Create 新增图书
// @Summary      新增图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookDTO}
// @Failure      400 {object} response.Response{data=response.ValidationData} "参数错误"
// @Failure      403 {object} response.Response "无权限"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.BookRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.manageBookUseCase.Create(c.Request.Context(), req.ToApp())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, b)
}

// Update 整体更新图书
// @Summary      更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookDTO}
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.BookRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.manageBookUseCase.Update(c.Request.Context(), id, req.ToApp())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, b)
}

// Delete 软删除图书，不存在也返回204
// @Summary      删除图书
// @Tags         图书
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      204
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.manageBookUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
