package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"familygifthub/backend/internal/dto"
	"familygifthub/backend/internal/model"
	"familygifthub/backend/internal/repository"
)

// ── 预留模块业务错误 ──

var (
	ErrGiftNotInFamily = errors.New("礼物不属于你的家庭")
	ErrReserveOwnGift  = errors.New("不能预留自己的礼物")
	ErrAlreadyReserved = errors.New("礼物已被其他成员预留")
	ErrNotReserved     = errors.New("礼物当前未被预留")
	ErrNotReserver     = errors.New("只有预留人可以取消预留")
)

// ReservationService 礼物预留状态机
//
// 每件礼物只有两个状态：未预留、被某成员预留。两个转移均要求调用方
// 与礼物同家庭：
//
//	Reserve:   未预留 → 被调用方预留；当前预留人重复预留为幂等成功
//	Unreserve: 被调用方预留 → 未预留；主人无权强制释放他人的预留
//
// 状态检查与写入由仓储层的条件更新原子完成（见 GiftRepository），
// 此处的前置读取只用于区分失败原因。无自动过期、无预留历史。
type ReservationService interface {
	Reserve(ctx context.Context, userID, familyID, giftID string) (*dto.GiftResponse, error)
	Unreserve(ctx context.Context, userID, familyID, giftID string) (*dto.GiftResponse, error)
}

type reservationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReservationService 创建 ReservationService 实例
func NewReservationService(repo *repository.Repository, logger *zap.Logger) ReservationService {
	return &reservationService{repo: repo, logger: logger}
}

func (s *reservationService) Reserve(ctx context.Context, userID, familyID, giftID string) (*dto.GiftResponse, error) {
	gift, err := s.getFamilyGift(ctx, familyID, giftID)
	if err != nil {
		return nil, err
	}

	if gift.OwnerUserID == userID {
		return nil, ErrReserveOwnGift
	}

	// 条件更新：无预留人或预留人即调用方时命中
	ok, err := s.repo.Gift.Reserve(ctx, giftID, userID)
	if err != nil {
		s.logger.Error("预留礼物失败", zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyReserved
	}

	return s.reload(ctx, giftID)
}

func (s *reservationService) Unreserve(ctx context.Context, userID, familyID, giftID string) (*dto.GiftResponse, error) {
	gift, err := s.getFamilyGift(ctx, familyID, giftID)
	if err != nil {
		return nil, err
	}

	if !gift.IsReserved() {
		return nil, ErrNotReserved
	}
	if *gift.ReservedByUserID != userID {
		return nil, ErrNotReserver
	}

	ok, err := s.repo.Gift.Unreserve(ctx, giftID, userID)
	if err != nil {
		s.logger.Error("取消预留失败", zap.Error(err))
		return nil, err
	}
	if !ok {
		// 前置读取后状态被并发修改，等同于"当前未被预留"
		return nil, ErrNotReserved
	}

	return s.reload(ctx, giftID)
}

// getFamilyGift 查找礼物并校验家庭归属
func (s *reservationService) getFamilyGift(ctx context.Context, familyID, giftID string) (*model.Gift, error) {
	gift, err := s.repo.Gift.GetByID(ctx, giftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGiftNotFound
		}
		s.logger.Error("查询礼物失败", zap.Error(err))
		return nil, err
	}
	if gift.FamilyID != familyID {
		return nil, ErrGiftNotInFamily
	}
	return gift, nil
}

func (s *reservationService) reload(ctx context.Context, giftID string) (*dto.GiftResponse, error) {
	gift, err := s.repo.Gift.GetByID(ctx, giftID)
	if err != nil {
		s.logger.Error("查询礼物失败", zap.Error(err))
		return nil, err
	}
	return dto.NewGiftResponse(gift), nil
}
