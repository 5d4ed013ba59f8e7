package dto

// CartItemRequest 加入购物车
type CartItemRequest struct {
	BookID   uint `json:"book_id" binding:"required,gt=0" example:"1"`
	Quantity int  `json:"quantity" binding:"required,gt=0" example:"2"`
}

// CartQuantityRequest 修改购物车条目数量
type CartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0" example:"3"`
}

// PlaceOrderRequest 下单，订单内容取自当前用户的购物车
type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"notblank,max=500" example:"Main St 1"`
}
