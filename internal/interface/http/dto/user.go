package dto

// RegisterRequest HTTP层注册请求
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password        string `json:"password" binding:"required,min=6,max=20" example:"secret1"`
	RepeatPassword  string `json:"repeat_password" binding:"required" example:"secret1"`
	FirstName       string `json:"first_name" binding:"notblank,max=100" example:"Ada"`
	LastName        string `json:"last_name" binding:"notblank,max=100" example:"Lovelace"`
	ShippingAddress string `json:"shipping_address" binding:"max=500" example:"Main St 1"`
}

// LoginRequest HTTP层登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required" example:"secret1"`
}
