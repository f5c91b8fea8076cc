package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"familygifthub/backend/internal/dto"
	"familygifthub/backend/internal/model"
)

func setupTestGiftService() (GiftService, *mockRepoSet) {
	repos := newMockRepoSet()
	svc := NewGiftService(repos.repo, zap.NewNop())
	return svc, repos
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

// ── 创建礼物 ──

func TestCreateGift_DefaultPriority(t *testing.T) {
	svc, repos := setupTestGiftService()
	_, owner, _ := repos.createFamilyFixture("ABC234")

	gift, err := svc.Create(context.Background(), owner.UserID, owner.FamilyID, &dto.CreateGiftRequest{
		Title: "自行车",
	})

	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if gift.Priority != model.PriorityMedium {
		t.Errorf("未指定优先级时期望 medium，实际=%s", gift.Priority)
	}
	if gift.FamilyID != owner.FamilyID || gift.OwnerUserID != owner.UserID {
		t.Error("familyId/ownerUserId 应取自调用方")
	}
}

func TestCreateGift_ExplicitFields(t *testing.T) {
	svc, repos := setupTestGiftService()
	_, owner, _ := repos.createFamilyFixture("ABC234")

	gift, err := svc.Create(context.Background(), owner.UserID, owner.FamilyID, &dto.CreateGiftRequest{
		Title:       "山地自行车",
		Description: "26寸",
		Link:        "https://shop.example.com/bike",
		Price:       floatPtr(1299.00),
		Priority:    model.PriorityHigh,
	})

	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if gift.Priority != model.PriorityHigh {
		t.Errorf("期望 priority=high，实际=%s", gift.Priority)
	}
	if gift.Price == nil || *gift.Price != 1299.00 {
		t.Error("价格应原样保存")
	}
}

func TestCreateGift_EmptyTitle(t *testing.T) {
	svc, repos := setupTestGiftService()
	_, owner, _ := repos.createFamilyFixture("ABC234")

	for _, title := range []string{"", "   "} {
		_, err := svc.Create(context.Background(), owner.UserID, owner.FamilyID, &dto.CreateGiftRequest{
			Title: title,
		})
		if !errors.Is(err, ErrTitleRequired) {
			t.Errorf("Create(title=%q) 期望 ErrTitleRequired，实际: %v", title, err)
		}
	}
}

func TestCreateGift_InvalidPriority(t *testing.T) {
	svc, repos := setupTestGiftService()
	_, owner, _ := repos.createFamilyFixture("ABC234")

	_, err := svc.Create(context.Background(), owner.UserID, owner.FamilyID, &dto.CreateGiftRequest{
		Title:    "自行车",
		Priority: "urgent",
	})
	if !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("期望 ErrInvalidPriority，实际: %v", err)
	}
}

// ── 心愿单查询 ──

func TestListOwn_NewestFirst(t *testing.T) {
	svc, repos := setupTestGiftService()
	_, owner, other := repos.createFamilyFixture("ABC234")

	old := &model.Gift{
		FamilyID: owner.FamilyID, OwnerUserID: owner.UserID,
		Title: "旧礼物", Priority: model.PriorityMedium,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	_ = repos.gift.Create(nil, old)
	recent := &model.Gift{
		FamilyID: owner.FamilyID, OwnerUserID: owner.UserID,
		Title: "新礼物", Priority: model.PriorityMedium,
		CreatedAt: time.Now(),
	}
	_ = repos.gift.Create(nil, recent)
	// 他人的礼物不应出现在本人清单中
	repos.createGiftFixture(other, "别人的礼物")

	gifts, err := svc.ListOwn(context.Background(), owner.UserID, owner.FamilyID)
	if err != nil {
		t.Fatalf("ListOwn 应成功: %v", err)
	}
	if len(gifts) != 2 {
		t.Fatalf("期望 2 件礼物，实际=%d", len(gifts))
	}
	if gifts[0].Title != "新礼物" || gifts[1].Title != "旧礼物" {
		t.Error("心愿单应按创建时间倒序")
	}
}

// ── 编辑礼物 ──

func TestUpdateGift_PartialPatch(t *testing.T) {
	svc, repos := setupTestGiftService()
	_, owner, _ := repos.createFamilyFixture("ABC234")
	gift := repos.createGiftFixture(owner, "自行车")
	gift.Description = "原描述"

	updated, err := svc.Update(context.Background(), owner.UserID, gift.GiftID, &dto.UpdateGiftRequest{
		Title: strPtr("电动自行车"),
	})

	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.Title != "电动自行车" {
		t.Errorf("标题应被更新，实际=%s", updated.Title)
	}
	if updated.Description != "原描述" {
		t.Error("未出现在 patch 中的字段不应被覆盖")
	}
}

func TestUpdateGift_EmptyTitleRejected(t *testing.T) {
	svc, repos := setupTestGiftService()
	_, owner, _ := repos.createFamilyFixture("ABC234")
	gift := repos.createGiftFixture(owner, "自行车")

	_, err := svc.Update(context.Background(), owner.UserID, gift.GiftID, &dto.UpdateGiftRequest{
		Title: strPtr("   "),
	})
	if !errors.Is(err, ErrTitleRequired) {
		t.Errorf("期望 ErrTitleRequired，实际: %v", err)
	}
}

func TestUpdateGift_NotFound(t *testing.T) {
	svc, repos := setupTestGiftService()
	_, owner, _ := repos.createFamilyFixture("ABC234")

	_, err := svc.Update(context.Background(), owner.UserID, "missing", &dto.UpdateGiftRequest{
		Title: strPtr("x"),
	})
	if !errors.Is(err, ErrGiftNotFound) {
		t.Errorf("期望 ErrGiftNotFound，实际: %v", err)
	}
}

func TestUpdateGift_NonOwnerForbidden(t *testing.T) {
	svc, repos := setupTestGiftService()
	_, owner, other := repos.createFamilyFixture("ABC234")
	gift := repos.createGiftFixture(owner, "自行车")

	// 同家庭成员也不行——只有主人可编辑
	_, err := svc.Update(context.Background(), other.UserID, gift.GiftID, &dto.UpdateGiftRequest{
		Title: strPtr("改名"),
	})
	if !errors.Is(err, ErrNotGiftOwner) {
		t.Errorf("期望 ErrNotGiftOwner，实际: %v", err)
	}
}

// ── 删除礼物 ──

func TestDeleteGift_Success(t *testing.T) {
	svc, repos := setupTestGiftService()
	_, owner, _ := repos.createFamilyFixture("ABC234")
	gift := repos.createGiftFixture(owner, "自行车")

	if err := svc.Delete(context.Background(), owner.UserID, gift.GiftID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := repos.gift.gifts[gift.GiftID]; ok {
		t.Error("删除应为永久移除")
	}
}

func TestDeleteGift_NonOwnerForbidden(t *testing.T) {
	svc, repos := setupTestGiftService()
	_, owner, other := repos.createFamilyFixture("ABC234")
	gift := repos.createGiftFixture(owner, "自行车")

	err := svc.Delete(context.Background(), other.UserID, gift.GiftID)
	if !errors.Is(err, ErrNotGiftOwner) {
		t.Errorf("期望 ErrNotGiftOwner，实际: %v", err)
	}
}
