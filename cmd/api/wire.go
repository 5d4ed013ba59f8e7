//go:build wireinject
// +build wireinject

// Wire依赖注入配置，修改后执行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	appcategory "github.com/xiebiao/bookshop/internal/application/category"
	apporder "github.com/xiebiao/bookshop/internal/application/order"
	appuser "github.com/xiebiao/bookshop/internal/application/user"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/internal/interface/http/router"
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	provideBookService,
	provideConverter,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewBootstrapAdminUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewManageBookUseCase,
	appcategory.NewCategoryUseCase,
	provideCartUseCase,
	apporder.NewPlaceOrderUseCase,
	apporder.NewAdvanceStatusUseCase,
	apporder.NewOrderQueryUseCase,
	provideEventPublisher,
)

// interfaceSet HTTP层
var interfaceSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	handler.NewAuthHandler,
	handler.NewBookHandler,
	handler.NewCategoryHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
	wire.Struct(new(router.Handlers), "*"),
	provideRouter,
	newApp,
)

// mysqlSet MySQL仓储 + Redis会话与缓存
var mysqlSet = wire.NewSet(
	provideDB,
	provideRedis,
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewCategoryRepository,
	mysql.NewCartRepository,
	mysql.NewOrderRepository,
	mysql.NewTxManager,
	wire.Bind(new(appuser.Transactor), new(*mysql.TxManager)),
	wire.Bind(new(apporder.Transactor), new(*mysql.TxManager)),
	redis.NewSessionStore,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
	provideRedisBookCache,
)

// memorySet 内存仓储，不依赖外部服务
var memorySet = wire.NewSet(
	memory.NewStore,
	memory.NewUserRepository,
	memory.NewBookRepository,
	memory.NewCategoryRepository,
	memory.NewCartRepository,
	memory.NewOrderRepository,
	memory.NewTxManager,
	wire.Bind(new(appuser.Transactor), new(*memory.TxManager)),
	wire.Bind(new(apporder.Transactor), new(*memory.TxManager)),
	provideMemorySessionStore,
	wire.Bind(new(appuser.SessionStore), new(*memory.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*memory.SessionStore)),
	provideMemoryBookCache,
)

// initMySQLApp database.driver=mysql
func initMySQLApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(mysqlSet, domainSet, applicationSet, interfaceSet)
	return nil, nil, nil
}

// initMemoryApp database.driver=memory
func initMemoryApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(memorySet, domainSet, applicationSet, interfaceSet)
	return nil, nil, nil
}
