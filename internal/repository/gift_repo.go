package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"familygifthub/backend/internal/model"
)

// GiftRepository 礼物数据访问接口
//
// Reserve/Unreserve 是条件更新：状态检查与写入在同一条 UPDATE 内完成，
// 由数据库保证原子性。两个并发的 Reserve 不可能同时命中
// "reserved_by_user_id IS NULL" 条件，单预留人不变式因此在存储层成立。
type GiftRepository interface {
	Create(ctx context.Context, gift *model.Gift) error
	GetByID(ctx context.Context, id string) (*model.Gift, error)
	ListByOwner(ctx context.Context, familyID, ownerUserID string) ([]model.Gift, error)
	ListByFamily(ctx context.Context, familyID string) ([]model.Gift, error)
	// UpdateFields 按字段部分更新（仅允许调用方传入可变字段）
	UpdateFields(ctx context.Context, giftID string, fields map[string]interface{}) error
	Delete(ctx context.Context, giftID string) error
	// Reserve 条件预留：当前无预留人或预留人即为 userID 时成功
	// 返回 false 表示条件不满足（已被他人预留或礼物已不存在）
	Reserve(ctx context.Context, giftID, userID string) (bool, error)
	// Unreserve 条件释放：仅当预留人为 userID 时清空
	Unreserve(ctx context.Context, giftID, userID string) (bool, error)
}

// giftRepo GiftRepository 的 GORM 实现
type giftRepo struct {
	db *gorm.DB
}

// NewGiftRepo 创建 GiftRepository 实例
func NewGiftRepo(db *gorm.DB) GiftRepository {
	return &giftRepo{db: db}
}

func (r *giftRepo) Create(ctx context.Context, gift *model.Gift) error {
	return r.db.WithContext(ctx).Create(gift).Error
}

func (r *giftRepo) GetByID(ctx context.Context, id string) (*model.Gift, error) {
	var gift model.Gift
	err := r.db.WithContext(ctx).
		Where("gift_id = ?", id).
		First(&gift).Error
	if err != nil {
		return nil, err
	}
	return &gift, nil
}

// ListByOwner 指定成员的心愿单，最新创建的在前
func (r *giftRepo) ListByOwner(ctx context.Context, familyID, ownerUserID string) ([]model.Gift, error) {
	var gifts []model.Gift
	err := r.db.WithContext(ctx).
		Where("family_id = ? AND owner_user_id = ?", familyID, ownerUserID).
		Order("created_at DESC").
		Find(&gifts).Error
	if err != nil {
		return nil, err
	}
	return gifts, nil
}

// ListByFamily 全家所有礼物，最新创建的在前
func (r *giftRepo) ListByFamily(ctx context.Context, familyID string) ([]model.Gift, error) {
	var gifts []model.Gift
	err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("created_at DESC").
		Find(&gifts).Error
	if err != nil {
		return nil, err
	}
	return gifts, nil
}

func (r *giftRepo) UpdateFields(ctx context.Context, giftID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()
	return r.db.WithContext(ctx).
		Model(&model.Gift{}).
		Where("gift_id = ?", giftID).
		Updates(fields).Error
}

func (r *giftRepo) Delete(ctx context.Context, giftID string) error {
	// 硬删除：本系统不做软删除
	return r.db.WithContext(ctx).
		Where("gift_id = ?", giftID).
		Delete(&model.Gift{}).Error
}

func (r *giftRepo) Reserve(ctx context.Context, giftID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Gift{}).
		Where("gift_id = ? AND (reserved_by_user_id IS NULL OR reserved_by_user_id = ?)", giftID, userID).
		Updates(map[string]interface{}{
			"reserved_by_user_id": userID,
			"updated_at":          time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *giftRepo) Unreserve(ctx context.Context, giftID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Gift{}).
		Where("gift_id = ? AND reserved_by_user_id = ?", giftID, userID).
		Updates(map[string]interface{}{
			"reserved_by_user_id": nil,
			"updated_at":          time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
