package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "github.com/xiebiao/bookshop/docs"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/pkg/logger"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

// @title           Bookshop API
// @version         1.0
// @description     在线书店：图书、分类、购物车与订单
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer {token}
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 日志与指标
	if err := logger.Init(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	}); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Sync()
	metrics.InitMetrics()

	// 3. 链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			logger.L().Fatal("init tracer failed", zap.Error(err))
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.L().Warn("shutdown tracer failed", zap.Error(err))
			}
		}()
	}

	// 4. 依赖注入
	app, cleanup, err := initApp(cfg)
	if err != nil {
		logger.L().Fatal("init app failed", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer cleanup()

	// 5. 确保管理员账号存在
	if err := app.bootstrap.Execute(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.L().Fatal("bootstrap admin failed", zap.Error(err))
	}

	// 6. 启动服务并等待退出信号
	if err := app.run(); err != nil {
		logger.L().Error("server stopped with error", zap.Error(err))
	}
}

// initApp 按存储驱动选择注入器
func initApp(cfg *config.Config) (*App, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		return initMemoryApp(cfg)
	case config.DriverMySQL:
		return initMySQLApp(cfg)
	default:
		return nil, nil, fmt.Errorf("不支持的存储驱动: %s", cfg.Database.Driver)
	}
}

// run 启动HTTP服务，收到SIGINT/SIGTERM后优雅关闭
func (a *App) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:      a.engine,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server started",
			zap.String("addr", srv.Addr),
			zap.String("mode", a.cfg.Server.Mode),
			zap.String("driver", a.cfg.Database.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.L().Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("服务器强制关闭: %w", err)
	}
	logger.L().Info("server stopped")
	return nil
}
