package repository

import (
	"context"

	"gorm.io/gorm"

	"familygifthub/backend/internal/model"
)

// FamilyRepository 家庭数据访问接口
type FamilyRepository interface {
	Create(ctx context.Context, family *model.Family) error
	GetByID(ctx context.Context, id string) (*model.Family, error)
	GetByCode(ctx context.Context, code string) (*model.Family, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

// familyRepo FamilyRepository 的 GORM 实现
type familyRepo struct {
	db *gorm.DB
}

// NewFamilyRepo 创建 FamilyRepository 实例
func NewFamilyRepo(db *gorm.DB) FamilyRepository {
	return &familyRepo{db: db}
}

func (r *familyRepo) Create(ctx context.Context, family *model.Family) error {
	return r.db.WithContext(ctx).Create(family).Error
}

func (r *familyRepo) GetByID(ctx context.Context, id string) (*model.Family, error) {
	var family model.Family
	err := r.db.WithContext(ctx).
		Where("family_id = ?", id).
		First(&family).Error
	if err != nil {
		return nil, err
	}
	return &family, nil
}

// GetByCode 按邀请码查找家庭（调用方负责归一化）
func (r *familyRepo) GetByCode(ctx context.Context, code string) (*model.Family, error) {
	var family model.Family
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&family).Error
	if err != nil {
		return nil, err
	}
	return &family, nil
}

// CodeExists 检查邀请码是否已被占用（生成时的碰撞探测）
func (r *familyRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Family{}).
		Where("code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
