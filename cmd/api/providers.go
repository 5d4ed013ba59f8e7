package main

import (
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	apporder "github.com/xiebiao/bookshop/internal/application/order"
	appuser "github.com/xiebiao/bookshop/internal/application/user"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/category"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/messaging"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/internal/interface/http/router"
	"github.com/xiebiao/bookshop/pkg/jwt"
	"github.com/xiebiao/bookshop/pkg/logger"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// App 组装完成的应用
type App struct {
	cfg       *config.Config
	engine    *gin.Engine
	bootstrap *appuser.BootstrapAdminUseCase
}

func newApp(cfg *config.Config, engine *gin.Engine, bootstrap *appuser.BootstrapAdminUseCase) *App {
	return &App{cfg: cfg, engine: engine, bootstrap: bootstrap}
}

// ========================================
// 通用Provider
// ========================================

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

func provideBookService(repo book.Repository, categories category.Repository) book.Service {
	return book.NewService(repo, categories)
}

func provideConverter(carts cart.Repository, books book.Repository) *order.Converter {
	return order.NewConverter(carts, books)
}

func provideCartUseCase(carts cart.Repository, books book.Repository) *appcart.CartUseCase {
	return appcart.NewCartUseCase(carts, books)
}

// mqBreakerTimeout Broker熔断后多久放行探测请求
const mqBreakerTimeout = 30 * time.Second

// provideEventPublisher mq关闭时事件只打debug日志
func provideEventPublisher(cfg *config.Config) (apporder.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return messaging.NoopOrderEvents{}, func() {}, nil
	}
	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := pub.Close(); err != nil {
			logger.L().Warn("close publisher failed", zap.Error(err))
		}
	}
	return messaging.NewOrderEvents(messaging.NewBreakerPublisher(pub, mqBreakerTimeout)), cleanup, nil
}

func provideRouter(cfg *config.Config, h router.Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	return router.New(h, auth, router.Options{
		Mode:    cfg.Server.Mode,
		Swagger: cfg.Server.Mode != "release",
	})
}

// ========================================
// MySQL + Redis
// ========================================

func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func provideRedis(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

func provideRedisBookCache(cfg *config.Config, client *goredis.Client) appbook.Cache {
	if !cfg.Cache.Enabled {
		return appbook.NopCache{}
	}
	return redis.NewBookCache(client, cfg.Cache.BookTTL)
}

// ========================================
// 内存存储（本地开发）
// ========================================

func provideMemoryBookCache(cfg *config.Config) appbook.Cache {
	if !cfg.Cache.Enabled {
		return appbook.NopCache{}
	}
	return memory.NewBookCache(cfg.Cache.BookTTL)
}

// provideMemorySessionStore 会话与Refresh Token同寿命，黑名单与Access Token同寿命
func provideMemorySessionStore(cfg *config.Config) *memory.SessionStore {
	return memory.NewSessionStore(cfg.JWT.RefreshTokenExpire, cfg.JWT.AccessTokenExpire)
}
