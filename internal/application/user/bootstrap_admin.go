package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/pkg/logger"
)

// BootstrapAdminUseCase 启动时确保管理员账号存在
type BootstrapAdminUseCase struct {
	tx          Transactor
	userService user.Service
	carts       cart.Repository
}

// NewBootstrapAdminUseCase 创建管理员初始化用例
func NewBootstrapAdminUseCase(tx Transactor, userService user.Service, carts cart.Repository) *BootstrapAdminUseCase {
	return &BootstrapAdminUseCase{tx: tx, userService: userService, carts: carts}
}

// Execute email为空时跳过；账号已存在时不修改密码
func (uc *BootstrapAdminUseCase) Execute(ctx context.Context, email, password string) error {
	if email == "" {
		return nil
	}

	return uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		u, created, err := uc.userService.EnsureAdmin(txCtx, email, password)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}
		if err := uc.carts.Create(txCtx, cart.NewShoppingCart(u.ID)); err != nil {
			return err
		}
		logger.FromCtx(ctx).Info("admin user created", zap.Uint("user_id", u.ID), zap.String("email", u.Email))
		return nil
	})
}
