package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/pkg/logger"
)

// Transactor 事务执行器
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// RegisterUseCase 用户注册用例
// 用户和他的空购物车在同一个事务里创建
type RegisterUseCase struct {
	tx          Transactor
	userService user.Service
	carts       cart.Repository
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(tx Transactor, userService user.Service, carts cart.Repository) *RegisterUseCase {
	return &RegisterUseCase{
		tx:          tx,
		userService: userService,
		carts:       carts,
	}
}

// Execute 执行注册
// 两次密码不一致返回ErrPasswordMismatch，邮箱已注册返回ErrEmailDuplicate
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	var u *user.User
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		u, err = uc.userService.Register(txCtx, user.Registration{
			Email:           req.Email,
			Password:        req.Password,
			RepeatPassword:  req.RepeatPassword,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			ShippingAddress: req.ShippingAddress,
		})
		if err != nil {
			return err
		}
		return uc.carts.Create(txCtx, cart.NewShoppingCart(u.ID))
	})
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("user registered", zap.Uint("user_id", u.ID))
	info := toUserInfo(u)
	return &info, nil
}

// =========================================
// 应用层DTO
// =========================================

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email           string
	Password        string
	RepeatPassword  string
	FirstName       string
	LastName        string
	ShippingAddress string
}

// UserInfo 用户信息，不包含密码
type UserInfo struct {
	ID              uint     `json:"id"`
	Email           string   `json:"email"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	ShippingAddress string   `json:"shipping_address"`
	Roles           []string `json:"roles"`
}

func toUserInfo(u *user.User) UserInfo {
	return UserInfo{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ShippingAddress: u.ShippingAddress,
		Roles:           u.RoleNames(),
	}
}
