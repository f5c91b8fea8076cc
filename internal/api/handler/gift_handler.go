package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"familygifthub/backend/internal/dto"
	"familygifthub/backend/internal/service"
	"familygifthub/backend/pkg/linkpreview"
	"familygifthub/backend/pkg/response"
)

// GiftHandler 礼物与预留模块 HTTP 处理器
type GiftHandler struct {
	giftSvc    service.GiftService
	resSvc     service.ReservationService
	previewSvc service.PreviewService
}

// NewGiftHandler 创建 GiftHandler
func NewGiftHandler(giftSvc service.GiftService, resSvc service.ReservationService, previewSvc service.PreviewService) *GiftHandler {
	return &GiftHandler{
		giftSvc:    giftSvc,
		resSvc:     resSvc,
		previewSvc: previewSvc,
	}
}

// ListMyGifts 当前成员的心愿单
// GET /api/lists/me
func (h *GiftHandler) ListMyGifts(c *gin.Context) {
	user, ok := MustGetUser(c)
	if !ok {
		return
	}

	gifts, err := h.giftSvc.ListOwn(c.Request.Context(), user.UserID, user.FamilyID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gifts)
}

// CreateGift 向自己的心愿单添加礼物
// POST /api/lists/me/items
func (h *GiftHandler) CreateGift(c *gin.Context) {
	user, ok := MustGetUser(c)
	if !ok {
		return
	}

	var req dto.CreateGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	gift, err := h.giftSvc.Create(c.Request.Context(), user.UserID, user.FamilyID, &req)
	if err != nil {
		h.writeGiftError(c, err)
		return
	}

	response.Created(c, gift)
}

// UpdateGift 编辑礼物（部分更新，仅主人）
// PATCH /api/gifts/:id
func (h *GiftHandler) UpdateGift(c *gin.Context) {
	user, ok := MustGetUser(c)
	if !ok {
		return
	}

	var req dto.UpdateGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	gift, err := h.giftSvc.Update(c.Request.Context(), user.UserID, c.Param("id"), &req)
	if err != nil {
		h.writeGiftError(c, err)
		return
	}

	response.OK(c, gift)
}

// DeleteGift 删除礼物（永久，仅主人）
// DELETE /api/gifts/:id
func (h *GiftHandler) DeleteGift(c *gin.Context) {
	user, ok := MustGetUser(c)
	if !ok {
		return
	}

	if err := h.giftSvc.Delete(c.Request.Context(), user.UserID, c.Param("id")); err != nil {
		h.writeGiftError(c, err)
		return
	}

	response.OK(c, nil)
}

// Reserve 预留家人的礼物
// POST /api/gifts/:id/reserve
func (h *GiftHandler) Reserve(c *gin.Context) {
	user, ok := MustGetUser(c)
	if !ok {
		return
	}

	gift, err := h.resSvc.Reserve(c.Request.Context(), user.UserID, user.FamilyID, c.Param("id"))
	if err != nil {
		h.writeReservationError(c, err)
		return
	}

	response.OK(c, gift)
}

// Unreserve 取消自己的预留
// POST /api/gifts/:id/unreserve
func (h *GiftHandler) Unreserve(c *gin.Context) {
	user, ok := MustGetUser(c)
	if !ok {
		return
	}

	gift, err := h.resSvc.Unreserve(c.Request.Context(), user.UserID, user.FamilyID, c.Param("id"))
	if err != nil {
		h.writeReservationError(c, err)
		return
	}

	response.OK(c, gift)
}

// LinkPreview 商品链接 OpenGraph 预览
// GET /api/link-preview?url=
func (h *GiftHandler) LinkPreview(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		response.BadRequest(c, 10001, "缺少 url 参数")
		return
	}

	preview, err := h.previewSvc.Fetch(c.Request.Context(), rawURL)
	if err != nil {
		if errors.Is(err, linkpreview.ErrInvalidURL) {
			response.BadRequest(c, 10001, "url 参数无效")
			return
		}
		// 目标站点不可达/超时等，对客户端归为坏输入而非服务端故障
		response.BadRequest(c, 10001, "链接无法预览")
		return
	}

	response.OK(c, preview)
}

// writeGiftError 礼物模块业务错误 → HTTP 响应
func (h *GiftHandler) writeGiftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGiftNotFound):
		response.NotFound(c, 12001, err.Error())
	case errors.Is(err, service.ErrNotGiftOwner):
		response.Forbidden(c, 10003, err.Error())
	case errors.Is(err, service.ErrTitleRequired):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrInvalidPriority):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}

// writeReservationError 预留状态机业务错误 → HTTP 响应
func (h *GiftHandler) writeReservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGiftNotFound):
		response.NotFound(c, 12001, err.Error())
	case errors.Is(err, service.ErrGiftNotInFamily):
		response.Forbidden(c, 10003, err.Error())
	case errors.Is(err, service.ErrReserveOwnGift):
		response.BadRequest(c, 12002, err.Error())
	case errors.Is(err, service.ErrAlreadyReserved):
		response.Conflict(c, 12003, err.Error())
	case errors.Is(err, service.ErrNotReserved):
		response.BadRequest(c, 12004, err.Error())
	case errors.Is(err, service.ErrNotReserver):
		response.Forbidden(c, 12005, err.Error())
	default:
		response.InternalError(c)
	}
}
