package user

import (
	"strings"
	"time"
)

// User 用户实体（聚合根）
// Password 保存bcrypt哈希值
type User struct {
	ID              uint
	Email           string
	Password        string
	FirstName       string
	LastName        string
	ShippingAddress string
	Roles           []RoleName
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Registration 注册信息（明文密码）
type Registration struct {
	Email           string
	Password        string
	RepeatPassword  string
	FirstName       string
	LastName        string
	ShippingAddress string
}

// NewUser 创建新用户，hashedPassword必须是bcrypt加密后的密码
func NewUser(r Registration, hashedPassword string, roles ...RoleName) *User {
	now := time.Now()
	return &User{
		Email:           strings.ToLower(strings.TrimSpace(r.Email)),
		Password:        hashedPassword,
		FirstName:       strings.TrimSpace(r.FirstName),
		LastName:        strings.TrimSpace(r.LastName),
		ShippingAddress: strings.TrimSpace(r.ShippingAddress),
		Roles:           roles,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// RoleNames 角色名字符串形式（写入JWT）
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, string(r))
	}
	return names
}
