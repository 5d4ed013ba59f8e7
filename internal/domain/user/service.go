package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Service 用户领域服务
type Service interface {
	// Register 注册普通用户（角色USER）
	Register(ctx context.Context, r Registration) (*User, error)

	// Login 校验邮箱和密码
	Login(ctx context.Context, email, password string) (*User, error)

	// EnsureAdmin 确保指定邮箱的管理员存在，已存在时直接返回
	EnsureAdmin(ctx context.Context, email, password string) (*User, bool, error)
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 用户注册
// 1. 两次密码一致 2. 邮箱格式 3. 密码长度6-20 4. bcrypt加密
// 邮箱唯一性由数据库唯一索引保证
func (s *service) Register(ctx context.Context, r Registration) (*User, error) {
	if r.Password != r.RepeatPassword {
		return nil, ErrPasswordMismatch
	}
	if err := validate(r.Email, r.Password); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(r.Password)
	if err != nil {
		return nil, err
	}

	u := NewUser(r, hashed, RoleUser)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login 用户登录
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, apperrors.Wrap(err, "密码验证失败")
	}
	return u, nil
}

func (s *service) EnsureAdmin(ctx context.Context, email, password string) (*User, bool, error) {
	existing, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, false, err
	}

	if err := validate(email, password); err != nil {
		return nil, false, err
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, false, err
	}

	u := NewUser(Registration{Email: email, FirstName: "Admin", LastName: "Admin"}, hashed, RoleAdmin, RoleUser)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func validate(email, password string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	if len(password) < 6 || len(password) > 20 {
		return ErrWeakPassword
	}
	return nil
}

// hashPassword bcrypt自动加盐
func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}
