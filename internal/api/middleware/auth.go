package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"familygifthub/backend/internal/repository"
	"familygifthub/backend/pkg/jwt"
	"familygifthub/backend/pkg/response"
)

// 上下文键：认证通过后注入的当前用户与家庭
const (
	ContextUserKey   = "current_user"
	ContextFamilyKey = "current_family"
)

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Token，
// 再从数据库加载 Token 内嵌的用户与家庭。任一已不存在
// （如家庭被清理）时按未认证处理，令牌随之作废。
func JWTAuth(jwtMgr *jwt.Manager, repo *repository.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		user, err := repo.User.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Unauthorized(c, 10002, "用户不存在")
			} else {
				response.InternalError(c)
			}
			c.Abort()
			return
		}

		family, err := repo.Family.GetByID(c.Request.Context(), claims.FamilyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Unauthorized(c, 10002, "家庭不存在")
			} else {
				response.InternalError(c)
			}
			c.Abort()
			return
		}

		// Token 中的家庭与用户实际归属必须一致
		if user.FamilyID != family.FamilyID {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextFamilyKey, family)

		c.Next()
	}
}
