package service

import (
	"context"

	"go.uber.org/zap"

	"familygifthub/backend/internal/dto"
	"familygifthub/backend/internal/repository"
)

// FamilyService 家庭视图业务接口
type FamilyService interface {
	// GetFamilyLists 全家清单视图：成员列表 + 礼物列表（附预留人信息）
	GetFamilyLists(ctx context.Context, familyID string) (*dto.FamilyListsResponse, error)
}

type familyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewFamilyService 创建 FamilyService 实例
func NewFamilyService(repo *repository.Repository, logger *zap.Logger) FamilyService {
	return &familyService{repo: repo, logger: logger}
}

// GetFamilyLists 纯读侧联接，无副作用。
// 已预留礼物按预留人 ID 附加其公开信息；预留人已被删除（引用悬空）
// 时该礼物原样返回而不中断整个视图——宽容读取优于因一条坏数据
// 拖垮全家清单。
func (s *familyService) GetFamilyLists(ctx context.Context, familyID string) (*dto.FamilyListsResponse, error) {
	users, err := s.repo.User.ListByFamily(ctx, familyID)
	if err != nil {
		s.logger.Error("查询家庭成员失败", zap.Error(err))
		return nil, err
	}

	gifts, err := s.repo.Gift.ListByFamily(ctx, familyID)
	if err != nil {
		s.logger.Error("查询家庭礼物失败", zap.Error(err))
		return nil, err
	}

	usersByID := make(map[string]dto.UserResponse, len(users))
	members := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		pub := dto.UserResponse{ID: u.UserID, DisplayName: u.DisplayName}
		usersByID[u.UserID] = pub
		members = append(members, pub)
	}

	enriched := make([]*dto.GiftResponse, 0, len(gifts))
	for i := range gifts {
		resp := dto.NewGiftResponse(&gifts[i])
		if gifts[i].IsReserved() {
			if reserver, ok := usersByID[*gifts[i].ReservedByUserID]; ok {
				resp.ReservedByUser = &reserver
			}
		}
		enriched = append(enriched, resp)
	}

	return &dto.FamilyListsResponse{
		Users: members,
		Gifts: enriched,
	}, nil
}
