package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"familygifthub/backend/internal/dto"
	"familygifthub/backend/internal/model"
	"familygifthub/backend/internal/repository"
	"familygifthub/backend/pkg/jwt"
)

// ── 身份与成员模块业务错误 ──

var (
	ErrFamilyNotFound = errors.New("邀请码对应的家庭不存在")
	ErrNameRequired   = errors.New("家庭名称和昵称不能为空")
)

// 邀请码字符集：32 个符号，排除易混淆的 0、1、I、O
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// 邀请码长度与碰撞重试上限
const (
	codeLength      = 6
	codeMaxAttempts = 5
)

// AuthService 身份与成员业务接口
type AuthService interface {
	// CreateFamily 创建家庭及首位成员（单事务），并签发凭证
	CreateFamily(ctx context.Context, req *dto.CreateFamilyRequest) (*dto.AuthResponse, error)
	// JoinFamily 凭邀请码加入家庭，创建新成员并签发凭证
	JoinFamily(ctx context.Context, req *dto.JoinFamilyRequest) (*dto.AuthResponse, error)
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, logger *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		jwtMgr: jwtMgr,
		logger: logger,
	}
}

func (s *authService) CreateFamily(ctx context.Context, req *dto.CreateFamilyRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	displayName := strings.TrimSpace(req.DisplayName)
	if name == "" || displayName == "" {
		return nil, ErrNameRequired
	}

	// 1. 生成邀请码：碰撞时最多重试 5 次，之后直接使用最后一个候选。
	//    有界重试是刻意取舍（可用性优先）；families.code 的唯一索引
	//    是最终兜底，残余碰撞会以存储错误形式暴露。
	code, err := s.generateFamilyCode(ctx)
	if err != nil {
		s.logger.Error("生成邀请码失败", zap.Error(err))
		return nil, err
	}

	// 2. 单事务创建家庭 + 首位成员，任一失败整体回滚
	family := &model.Family{Name: name, Code: code}
	user := &model.User{DisplayName: displayName}

	err = s.repo.WithTx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Family.Create(ctx, family); err != nil {
			return err
		}
		user.FamilyID = family.FamilyID
		return txRepo.User.Create(ctx, user)
	})
	if err != nil {
		s.logger.Error("创建家庭失败", zap.Error(err))
		return nil, err
	}

	// 3. 签发凭证
	token, err := s.jwtMgr.GenerateToken(user.UserID, family.FamilyID)
	if err != nil {
		s.logger.Error("签发 Token 失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("家庭创建成功",
		zap.String("family_id", family.FamilyID),
		zap.String("code", family.Code),
	)

	return buildAuthResponse(token, family, user), nil
}

func (s *authService) JoinFamily(ctx context.Context, req *dto.JoinFamilyRequest) (*dto.AuthResponse, error) {
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		return nil, ErrNameRequired
	}

	// 1. 归一化邀请码后查找家庭
	code := strings.ToUpper(strings.TrimSpace(req.FamilyCode))
	family, err := s.repo.Family.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFamilyNotFound
		}
		s.logger.Error("查询家庭失败", zap.Error(err))
		return nil, err
	}

	// 2. 创建新成员（加入对持码者完全开放，无人数上限、无审批）
	user := &model.User{
		FamilyID:    family.FamilyID,
		DisplayName: displayName,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建成员失败", zap.Error(err))
		return nil, err
	}

	// 3. 签发凭证
	token, err := s.jwtMgr.GenerateToken(user.UserID, family.FamilyID)
	if err != nil {
		s.logger.Error("签发 Token 失败", zap.Error(err))
		return nil, err
	}

	return buildAuthResponse(token, family, user), nil
}

// generateFamilyCode 生成邀请码，探测到碰撞时重新生成
func (s *authService) generateFamilyCode(ctx context.Context) (string, error) {
	code, err := randomCode(codeLength)
	if err != nil {
		return "", err
	}

	for i := 0; i < codeMaxAttempts; i++ {
		exists, err := s.repo.Family.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		if code, err = randomCode(codeLength); err != nil {
			return "", err
		}
	}

	return code, nil
}

// randomCode 从受限字符集生成指定长度的随机码
func randomCode(length int) (string, error) {
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		result[i] = codeAlphabet[n.Int64()]
	}
	return string(result), nil
}

func buildAuthResponse(token string, family *model.Family, user *model.User) *dto.AuthResponse {
	return &dto.AuthResponse{
		Token: token,
		Family: dto.FamilyResponse{
			ID:   family.FamilyID,
			Name: family.Name,
			Code: family.Code,
		},
		User: dto.UserResponse{
			ID:          user.UserID,
			DisplayName: user.DisplayName,
		},
	}
}
