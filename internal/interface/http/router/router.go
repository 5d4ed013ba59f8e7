// Package router 组装Gin引擎与全部路由
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// slowRequestThreshold 超过该耗时的请求记warn日志
const slowRequestThreshold = 500 * time.Millisecond

// Handlers 路由依赖的全部处理器
type Handlers struct {
	Auth     *handler.AuthHandler
	Book     *handler.BookHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
}

// Options 可选路由
type Options struct {
	Mode    string // gin运行模式：debug/release/test
	Swagger bool
}

// New 创建Gin引擎并注册路由
//
//	r := router.New(h, authMiddleware, router.Options{Mode: cfg.Server.Mode, Swagger: true})
func New(h Handlers, auth *middleware.AuthMiddleware, opts Options) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	handler.RegisterValidators()

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.AccessLog(slowRequestThreshold),
		middleware.Metrics(),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")

	// 认证模块（注册、登录公开）
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", auth.RequireAuth(), h.Auth.Logout)
	}

	authorized := v1.Group("")
	authorized.Use(auth.RequireAuth())

	anyone := auth.RequireRoles(user.RoleAdmin, user.RoleUser)
	adminOnly := auth.RequireRoles(user.RoleAdmin)
	userOnly := auth.RequireRoles(user.RoleUser)

	// 图书模块
	books := authorized.Group("/books")
	{
		books.GET("", anyone, h.Book.List)
		books.GET("/search", anyone, h.Book.Search)
		books.GET("/:id", anyone, h.Book.Get)
		books.POST("", adminOnly, h.Book.Create)
		books.PUT("/:id", adminOnly, h.Book.Update)
		books.DELETE("/:id", adminOnly, h.Book.Delete)
	}

	// 分类模块
	categories := authorized.Group("/categories")
	{
		categories.GET("", anyone, h.Category.List)
		categories.GET("/:id", anyone, h.Category.Get)
		categories.GET("/:id/books", anyone, h.Category.Books)
		categories.POST("", adminOnly, h.Category.Create)
	}

	// 购物车模块
	cart := authorized.Group("/cart", userOnly)
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:id", h.Cart.UpdateItem)
		cart.DELETE("/items/:id", h.Cart.RemoveItem)
	}

	// 订单模块，明细查询在用例层校验归属
	orders := authorized.Group("/orders")
	{
		orders.POST("", userOnly, h.Order.Place)
		orders.GET("", userOnly, h.Order.History)
		orders.GET("/:id/items", anyone, h.Order.Items)
		orders.GET("/:id/items/:itemId", anyone, h.Order.Item)
		orders.PATCH("/:id", adminOnly, h.Order.Advance)
	}

	return r
}
