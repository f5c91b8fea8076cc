package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db     *gorm.DB
	Family FamilyRepository
	User   UserRepository
	Gift   GiftRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:     db,
		Family: NewFamilyRepo(db),
		User:   NewUserRepo(db),
		Gift:   NewGiftRepo(db),
	}
}

// WithTx 在单个数据库事务内执行 fn
// fn 收到的 Repository 绑定事务连接；fn 返回错误时整体回滚。
// 用于"创建家庭 + 首位成员"这类要么全部成功要么全部失败的操作。
func (r *Repository) WithTx(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		// 无真实连接（单测 mock 场景）时直接执行，不提供回滚
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
