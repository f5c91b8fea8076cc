package model

import "time"

// User 成员表 — 对应 users
// family_id 创建后不可变：成员终身属于一个家庭，无跨家庭身份、无角色区分
type User struct {
	UserID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FamilyID    string    `gorm:"type:uuid;not null;index"                       json:"familyId"`
	DisplayName string    `gorm:"type:varchar(100);not null"                     json:"displayName"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"createdAt"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
