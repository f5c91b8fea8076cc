package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"familygifthub/backend/internal/dto"
	"familygifthub/backend/internal/model"
	"familygifthub/backend/internal/repository"
)

// ── 礼物模块业务错误 ──

var (
	ErrGiftNotFound    = errors.New("礼物不存在")
	ErrNotGiftOwner    = errors.New("只有礼物主人可以执行此操作")
	ErrTitleRequired   = errors.New("礼物标题不能为空")
	ErrInvalidPriority = errors.New("优先级必须为 high/medium/low 之一")
)

// GiftService 礼物清单业务接口
// 所有操作均要求已认证的 (成员, 家庭) 上下文，由中间件解析后传入
type GiftService interface {
	// ListOwn 当前成员自己的心愿单，按创建时间倒序
	ListOwn(ctx context.Context, userID, familyID string) ([]*dto.GiftResponse, error)
	// Create 为当前成员创建礼物；familyId/ownerUserId 取自调用方，不可指定
	Create(ctx context.Context, userID, familyID string, req *dto.CreateGiftRequest) (*dto.GiftResponse, error)
	// Update 部分更新；仅礼物主人可编辑
	Update(ctx context.Context, userID, giftID string, req *dto.UpdateGiftRequest) (*dto.GiftResponse, error)
	// Delete 永久删除；仅礼物主人可删除
	Delete(ctx context.Context, userID, giftID string) error
}

type giftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGiftService 创建 GiftService 实例
func NewGiftService(repo *repository.Repository, logger *zap.Logger) GiftService {
	return &giftService{repo: repo, logger: logger}
}

func (s *giftService) ListOwn(ctx context.Context, userID, familyID string) ([]*dto.GiftResponse, error) {
	gifts, err := s.repo.Gift.ListByOwner(ctx, familyID, userID)
	if err != nil {
		s.logger.Error("查询心愿单失败", zap.Error(err))
		return nil, err
	}

	result := make([]*dto.GiftResponse, 0, len(gifts))
	for i := range gifts {
		result = append(result, dto.NewGiftResponse(&gifts[i]))
	}
	return result, nil
}

func (s *giftService) Create(ctx context.Context, userID, familyID string, req *dto.CreateGiftRequest) (*dto.GiftResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	// priority 缺省为 medium；非法值拒绝而非静默回退
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	} else if !model.IsValidPriority(priority) {
		return nil, ErrInvalidPriority
	}

	gift := &model.Gift{
		FamilyID:    familyID,
		OwnerUserID: userID,
		Title:       title,
		Description: req.Description,
		Link:        req.Link,
		Price:       req.Price,
		Priority:    priority,
	}

	if err := s.repo.Gift.Create(ctx, gift); err != nil {
		s.logger.Error("创建礼物失败", zap.Error(err))
		return nil, err
	}

	return dto.NewGiftResponse(gift), nil
}

func (s *giftService) Update(ctx context.Context, userID, giftID string, req *dto.UpdateGiftRequest) (*dto.GiftResponse, error) {
	gift, err := s.getOwnedGift(ctx, userID, giftID)
	if err != nil {
		return nil, err
	}

	// 仅覆盖显式出现的字段；familyId/ownerUserId/reservedByUserId 不可经此修改
	fields := make(map[string]interface{})
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		fields["title"] = title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Link != nil {
		fields["link"] = *req.Link
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Priority != nil {
		if !model.IsValidPriority(*req.Priority) {
			return nil, ErrInvalidPriority
		}
		fields["priority"] = *req.Priority
	}

	if len(fields) > 0 {
		if err := s.repo.Gift.UpdateFields(ctx, gift.GiftID, fields); err != nil {
			s.logger.Error("更新礼物失败", zap.Error(err))
			return nil, err
		}
	}

	updated, err := s.repo.Gift.GetByID(ctx, giftID)
	if err != nil {
		s.logger.Error("查询礼物失败", zap.Error(err))
		return nil, err
	}
	return dto.NewGiftResponse(updated), nil
}

func (s *giftService) Delete(ctx context.Context, userID, giftID string) error {
	gift, err := s.getOwnedGift(ctx, userID, giftID)
	if err != nil {
		return err
	}

	if err := s.repo.Gift.Delete(ctx, gift.GiftID); err != nil {
		s.logger.Error("删除礼物失败", zap.Error(err))
		return err
	}
	return nil
}

// getOwnedGift 查找礼物并校验归属：不存在 → ErrGiftNotFound，
// 非主人 → ErrNotGiftOwner（无论是否同家庭）
func (s *giftService) getOwnedGift(ctx context.Context, userID, giftID string) (*model.Gift, error) {
	gift, err := s.repo.Gift.GetByID(ctx, giftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGiftNotFound
		}
		s.logger.Error("查询礼物失败", zap.Error(err))
		return nil, err
	}
	if gift.OwnerUserID != userID {
		return nil, ErrNotGiftOwner
	}
	return gift, nil
}
