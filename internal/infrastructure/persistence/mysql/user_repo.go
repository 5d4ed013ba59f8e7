package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/user"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// userRepository 用户仓储实现(MySQL)
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户并写入users_roles关联，角色必须已存在
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	db := dbFromContext(ctx, r.db)

	names := u.RoleNames()
	var roles []RoleModel
	if len(names) > 0 {
		if err := db.Scopes(notDeleted("roles")).Where("name IN ?", names).Find(&roles).Error; err != nil {
			return apperrors.Wrap(err, "查询角色失败")
		}
		if len(roles) != len(names) {
			return apperrors.New(apperrors.ErrCodeInternal, "角色未初始化")
		}
	}

	model := &UserModel{
		Email:           u.Email,
		Password:        u.Password,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ShippingAddress: u.ShippingAddress,
		Roles:           roles,
	}
	if err := db.Omit("Roles.*").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	return r.findOne(ctx, "users.id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, "users.email = ?", email)
}

func (r *userRepository) findOne(ctx context.Context, cond string, arg interface{}) (*user.User, error) {
	var model UserModel
	err := dbFromContext(ctx, r.db).
		Preload("Roles", notDeleted("roles")).
		Where(cond, arg).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

func toUserEntity(m *UserModel) *user.User {
	roles := make([]user.RoleName, 0, len(m.Roles))
	for _, r := range m.Roles {
		roles = append(roles, user.RoleName(r.Name))
	}
	return &user.User{
		ID:              m.ID,
		Email:           m.Email,
		Password:        m.Password,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		ShippingAddress: m.ShippingAddress,
		Roles:           roles,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
