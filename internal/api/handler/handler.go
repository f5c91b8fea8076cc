package handler

import "familygifthub/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth   *AuthHandler
	Gift   *GiftHandler
	Family *FamilyHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(svc.Auth),
		Gift:   NewGiftHandler(svc.Gift, svc.Reservation, svc.Preview),
		Family: NewFamilyHandler(svc.Family, svc.Export),
	}
}
