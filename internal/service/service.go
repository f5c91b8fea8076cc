package service

import (
	"time"

	"go.uber.org/zap"

	"familygifthub/backend/config"
	"familygifthub/backend/internal/repository"
	"familygifthub/backend/pkg/jwt"
	"familygifthub/backend/pkg/linkpreview"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	Gift        GiftService
	Reservation ReservationService
	Family      FamilyService
	Export      ExportService
	Preview     PreviewService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(repo, jwtMgr, logger),
		Gift:        NewGiftService(repo, logger),
		Reservation: NewReservationService(repo, logger),
		Family:      NewFamilyService(repo, logger),
		Export:      NewExportService(repo, logger),
		Preview:     NewPreviewService(linkpreview.NewFetcher(8*time.Second), logger),
	}
}
