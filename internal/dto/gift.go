package dto

import (
	"time"

	"familygifthub/backend/internal/model"
)

// ── 礼物模块 DTO ──

// CreateGiftRequest 创建礼物请求
// priority 缺省为 medium；传入枚举之外的值视为非法输入而非静默回退
type CreateGiftRequest struct {
	Title       string   `json:"title"       binding:"required,max=200"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	Link        string   `json:"link"        binding:"omitempty,max=2000"`
	Price       *float64 `json:"price"       binding:"omitempty,gte=0"`
	Priority    string   `json:"priority"    binding:"omitempty,oneof=high medium low"`
}

// UpdateGiftRequest 编辑礼物请求（部分更新）
// 指针字段区分"未提供"与"置空"：仅显式出现的字段会被覆盖。
// 可变字段只有 title/description/link/price/priority，其余字段忽略。
type UpdateGiftRequest struct {
	Title       *string  `json:"title"       binding:"omitempty,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Link        *string  `json:"link"        binding:"omitempty,max=2000"`
	Price       *float64 `json:"price"       binding:"omitempty,gte=0"`
	Priority    *string  `json:"priority"    binding:"omitempty,oneof=high medium low"`
}

// GiftResponse 礼物信息
// reservedByUser 仅在读侧聚合中按需附加（预留人仍存在时）
type GiftResponse struct {
	ID               string        `json:"id"`
	FamilyID         string        `json:"familyId"`
	OwnerUserID      string        `json:"ownerUserId"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	Link             string        `json:"link,omitempty"`
	Price            *float64      `json:"price,omitempty"`
	Priority         string        `json:"priority"`
	ReservedByUserID *string       `json:"reservedByUserId,omitempty"`
	ReservedByUser   *UserResponse `json:"reservedByUser,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
}

// NewGiftResponse 从模型构造礼物响应（不做预留人附加）
func NewGiftResponse(g *model.Gift) *GiftResponse {
	return &GiftResponse{
		ID:               g.GiftID,
		FamilyID:         g.FamilyID,
		OwnerUserID:      g.OwnerUserID,
		Title:            g.Title,
		Description:      g.Description,
		Link:             g.Link,
		Price:            g.Price,
		Priority:         g.Priority,
		ReservedByUserID: g.ReservedByUserID,
		CreatedAt:        g.CreatedAt,
	}
}
