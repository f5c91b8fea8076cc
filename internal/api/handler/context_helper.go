package handler

import (
	"github.com/gin-gonic/gin"

	"familygifthub/backend/internal/api/middleware"
	"familygifthub/backend/internal/model"
	"familygifthub/backend/pkg/response"
)

// MustGetUser 从 Gin 上下文中安全提取当前成员。
// 如果认证中间件未正确注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	user, ok := v.(*model.User)
	if !ok || user == nil {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return user, true
}

// MustGetFamily 从 Gin 上下文中安全提取当前家庭。
func MustGetFamily(c *gin.Context) (*model.Family, bool) {
	v, exists := c.Get(middleware.ContextFamilyKey)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	family, ok := v.(*model.Family)
	if !ok || family == nil {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return family, true
}
