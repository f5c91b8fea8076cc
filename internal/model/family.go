package model

import "time"

// Family 家庭表 — 对应 families
// code 为 6 位邀请码，全局唯一，成员凭码加入
type Family struct {
	FamilyID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null"                     json:"name"`
	Code      string    `gorm:"type:varchar(6);not null;uniqueIndex:idx_families_code" json:"code"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"createdAt"`
}

// TableName 指定表名
func (Family) TableName() string { return "families" }
