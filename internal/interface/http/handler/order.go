package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookshop/internal/application/order"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	placeOrderUseCase    *apporder.PlaceOrderUseCase
	advanceStatusUseCase *apporder.AdvanceStatusUseCase
	queryUseCase         *apporder.OrderQueryUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	placeOrderUseCase *apporder.PlaceOrderUseCase,
	advanceStatusUseCase *apporder.AdvanceStatusUseCase,
	queryUseCase *apporder.OrderQueryUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeOrderUseCase:    placeOrderUseCase,
		advanceStatusUseCase: advanceStatusUseCase,
		queryUseCase:         queryUseCase,
	}
}

// Place 用购物车下单
// @Summary      下单
// @Description  把当前用户购物车中的图书按当前价格生成订单，成功后清空购物车
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PlaceOrderRequest true "收货地址"
// @Success      201 {object} response.Response{data=apporder.OrderDTO}
// @Failure      400 {object} response.Response "购物车为空"
// @Failure      404 {object} response.Response "购物车或图书不存在"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	// 用户取自Token，不接受请求体中的用户ID
	result, err := h.placeOrderUseCase.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		UserID:          middleware.GetUserID(c),
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// History 当前用户的订单历史
// @Summary      订单历史
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        size query int false "每页大小" default(20)
// @Param        sort query []string false "排序，默认order_date,desc" collectionFormat(multi)
// @Success      200 {object} response.Response{data=response.PageData{list=[]apporder.OrderDTO}}
// @Router       /api/v1/orders [get]
func (h *OrderHandler) History(c *gin.Context) {
	p, err := parsePage(c, order.SortProperties)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.queryUseCase.History(c.Request.Context(), middleware.GetUserID(c), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, result)
}

// Items 订单明细
// @Summary      订单明细
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=[]apporder.OrderItemDTO}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id}/items [get]
func (h *OrderHandler) Items(c *gin.Context) {
	orderID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.queryUseCase.Items(c.Request.Context(), viewer(c), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// Item 单条订单明细
// @Summary      单条订单明细
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        itemId path int true "明细ID"
// @Success      200 {object} response.Response{data=apporder.OrderItemDTO}
// @Failure      404 {object} response.Response "订单或明细不存在"
// @Router       /api/v1/orders/{id}/items/{itemId} [get]
func (h *OrderHandler) Item(c *gin.Context) {
	orderID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	itemID, err := parseID(c, "itemId")
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.queryUseCase.Item(c.Request.Context(), viewer(c), orderID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// Advance 推进订单状态：PENDING -> DELIVERED -> COMPLETED -> 删除
// @Summary      推进订单状态
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderDTO}
// @Failure      403 {object} response.Response "无权限"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [patch]
func (h *OrderHandler) Advance(c *gin.Context) {
	orderID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.advanceStatusUseCase.Execute(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func viewer(c *gin.Context) apporder.Viewer {
	return apporder.Viewer{UserID: middleware.GetUserID(c), IsAdmin: middleware.IsAdmin(c)}
}
