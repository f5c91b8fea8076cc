package model

import "time"

// 礼物优先级枚举值
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Gift 礼物表 — 对应 gifts
//
// family_id 与 owner_user_id 创建时从调用方写入，此后不可变。
// reserved_by_user_id 为单槽预留：同一时刻至多一个预留人，且不可为
// 礼物主人本人。预留人对应的成员被删除后引用悬空，读侧聚合容忍该情况。
type Gift struct {
	GiftID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FamilyID         string    `gorm:"type:uuid;not null;index"                       json:"familyId"`
	OwnerUserID      string    `gorm:"type:uuid;not null;index"                       json:"ownerUserId"`
	Title            string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description      string    `gorm:"type:text"                                      json:"description,omitempty"`
	Link             string    `gorm:"type:text"                                      json:"link,omitempty"`
	Price            *float64  `gorm:"type:numeric(12,2)"                             json:"price,omitempty"`
	Priority         string    `gorm:"type:varchar(10);not null;default:'medium'"     json:"priority"`
	ReservedByUserID *string   `gorm:"type:uuid"                                      json:"reservedByUserId,omitempty"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"createdAt"`
	UpdatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updatedAt"`
}

// TableName 指定表名
func (Gift) TableName() string { return "gifts" }

// IsReserved 当前是否处于已预留状态
func (g *Gift) IsReserved() bool {
	return g.ReservedByUserID != nil && *g.ReservedByUserID != ""
}

// IsValidPriority 校验优先级是否为枚举值之一
func IsValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}
