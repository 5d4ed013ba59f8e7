package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CartHandler 当前用户的购物车
type CartHandler struct {
	cartUseCase *appcart.CartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(cartUseCase *appcart.CartUseCase) *CartHandler {
	return &CartHandler{cartUseCase: cartUseCase}
}

// Get 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appcart.CartDTO}
// @Router       /api/v1/cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	sc, err := h.cartUseCase.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, sc)
}

// AddItem 加入购物车，同一本书合并数量
// @Summary      加入购物车
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CartItemRequest true "图书与数量"
// @Success      200 {object} response.Response{data=appcart.CartDTO}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.CartItemRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	sc, err := h.cartUseCase.AddItem(c.Request.Context(), middleware.GetUserID(c), req.BookID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, sc)
}

// UpdateItem 修改条目数量
// @Summary      修改购物车条目
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "条目ID"
// @Param        request body dto.CartQuantityRequest true "数量"
// @Success      200 {object} response.Response{data=appcart.CartDTO}
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /api/v1/cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CartQuantityRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	sc, err := h.cartUseCase.UpdateItem(c.Request.Context(), middleware.GetUserID(c), itemID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, sc)
}

// RemoveItem 移除条目
// @Summary      移除购物车条目
// @Tags         购物车
// @Security     BearerAuth
// @Param        id path int true "条目ID"
// @Success      204
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /api/v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.cartUseCase.RemoveItem(c.Request.Context(), middleware.GetUserID(c), itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
