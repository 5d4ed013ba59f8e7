package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookshop/internal/domain/user"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/jwt"
	"github.com/xiebiao/bookshop/pkg/response"
)

// Context中的键
const (
	ctxUserID      = "user_id"
	ctxEmail       = "email"
	ctxRoles       = "roles"
	ctxToken       = "access_token"
	ctxTokenExpiry = "token_expiry"
)

var errTokenRevoked = apperrors.ErrInvalidToken.WithMessage("Token已失效，请重新登录")

// TokenBlacklist 已登出Token的查询
type TokenBlacklist interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证与角色校验
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// RequireAuth 要求登录
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 提取Token，格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Error(c, apperrors.ErrInvalidToken.WithMessage("Token格式错误"))
			return
		}
		tokenString := parts[1]

		// 2. 检查黑名单（已登出）
		revoked, err := m.blacklist.IsRevoked(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, err)
			return
		}
		if revoked {
			response.Error(c, errTokenRevoked)
			return
		}

		// 3. 验证签名、有效期与Token类型
		claims, err := m.jwtManager.ParseAccessToken(tokenString)
		if err != nil {
			response.Error(c, err)
			return
		}

		// 4. 注入用户信息
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRoles, user.ParseRoles(claims.Roles))
		c.Set(ctxToken, tokenString)
		if claims.ExpiresAt != nil {
			c.Set(ctxTokenExpiry, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// RequireRoles 要求具备任一角色，必须放在RequireAuth之后
func (m *AuthMiddleware) RequireRoles(roles ...user.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !user.HasAnyRole(GetRoles(c), roles...) {
			response.Error(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUserID 当前登录用户ID，未登录返回0
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get(ctxUserID); ok {
		if uid, ok := v.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetEmail 当前登录用户邮箱
func GetEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}

// GetRoles 当前登录用户角色
func GetRoles(c *gin.Context) []user.RoleName {
	if v, ok := c.Get(ctxRoles); ok {
		if roles, ok := v.([]user.RoleName); ok {
			return roles
		}
	}
	return nil
}

// IsAdmin 当前用户是否管理员
func IsAdmin(c *gin.Context) bool {
	return user.HasAnyRole(GetRoles(c), user.RoleAdmin)
}

// GetToken 当前请求的Access Token及其过期时间（登出时拉黑）
func GetToken(c *gin.Context) (string, time.Time) {
	return c.GetString(ctxToken), c.GetTime(ctxTokenExpiry)
}
