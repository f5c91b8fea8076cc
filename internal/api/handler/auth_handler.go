package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"familygifthub/backend/internal/dto"
	"familygifthub/backend/internal/service"
	"familygifthub/backend/pkg/response"
)

// AuthHandler 身份与成员模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// CreateFamily 创建家庭及首位成员
// POST /api/families
func (h *AuthHandler) CreateFamily(c *gin.Context) {
	var req dto.CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.CreateFamily(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrNameRequired) {
			response.BadRequest(c, 10001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// JoinFamily 凭邀请码加入家庭
// POST /api/auth/join
func (h *AuthHandler) JoinFamily(c *gin.Context) {
	var req dto.JoinFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.JoinFamily(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired):
			response.BadRequest(c, 10001, err.Error())
		case errors.Is(err, service.ErrFamilyNotFound):
			response.NotFound(c, 11001, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Me 当前登录身份
// GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := MustGetUser(c)
	if !ok {
		return
	}
	family, ok := MustGetFamily(c)
	if !ok {
		return
	}

	response.OK(c, dto.IdentityResponse{
		User: dto.UserResponse{
			ID:          user.UserID,
			DisplayName: user.DisplayName,
		},
		Family: dto.FamilyResponse{
			ID:   family.FamilyID,
			Name: family.Name,
			Code: family.Code,
		},
	})
}
