package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"familygifthub/backend/internal/model"
	"familygifthub/backend/internal/repository"
)

// ── Mock FamilyRepository ──

type mockFamilyRepo struct {
	families map[string]*model.Family // key: family_id
	byCode   map[string]*model.Family
	// codeExistsAlways 为 true 时 CodeExists 恒返回 true，用于验证
	// 碰撞重试耗尽后仍继续创建的策略
	codeExistsAlways bool
	codeExistsCalls  int
	seq              int
}

func newMockFamilyRepo() *mockFamilyRepo {
	return &mockFamilyRepo{
		families: make(map[string]*model.Family),
		byCode:   make(map[string]*model.Family),
	}
}

func (m *mockFamilyRepo) Create(_ context.Context, family *model.Family) error {
	if family.FamilyID == "" {
		m.seq++
		family.FamilyID = fmt.Sprintf("family-%d", m.seq)
	}
	if family.CreatedAt.IsZero() {
		family.CreatedAt = time.Now()
	}
	m.families[family.FamilyID] = family
	m.byCode[family.Code] = family
	return nil
}

func (m *mockFamilyRepo) GetByID(_ context.Context, id string) (*model.Family, error) {
	if f, ok := m.families[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFamilyRepo) GetByCode(_ context.Context, code string) (*model.Family, error) {
	if f, ok := m.byCode[code]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFamilyRepo) CodeExists(_ context.Context, code string) (bool, error) {
	m.codeExistsCalls++
	if m.codeExistsAlways {
		return true, nil
	}
	_, ok := m.byCode[code]
	return ok, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByFamily(_ context.Context, familyID string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.FamilyID == familyID {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// ── Mock GiftRepository ──

type mockGiftRepo struct {
	gifts map[string]*model.Gift
	seq   int
}

func newMockGiftRepo() *mockGiftRepo {
	return &mockGiftRepo{gifts: make(map[string]*model.Gift)}
}

func (m *mockGiftRepo) Create(_ context.Context, gift *model.Gift) error {
	if gift.GiftID == "" {
		m.seq++
		gift.GiftID = fmt.Sprintf("gift-%d", m.seq)
	}
	if gift.CreatedAt.IsZero() {
		gift.CreatedAt = time.Now()
	}
	m.gifts[gift.GiftID] = gift
	return nil
}

func (m *mockGiftRepo) GetByID(_ context.Context, id string) (*model.Gift, error) {
	if g, ok := m.gifts[id]; ok {
		copied := *g
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGiftRepo) ListByOwner(_ context.Context, familyID, ownerUserID string) ([]model.Gift, error) {
	var result []model.Gift
	for _, g := range m.gifts {
		if g.FamilyID == familyID && g.OwnerUserID == ownerUserID {
			result = append(result, *g)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockGiftRepo) ListByFamily(_ context.Context, familyID string) ([]model.Gift, error) {
	var result []model.Gift
	for _, g := range m.gifts {
		if g.FamilyID == familyID {
			result = append(result, *g)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockGiftRepo) UpdateFields(_ context.Context, giftID string, fields map[string]interface{}) error {
	g, ok := m.gifts[giftID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "title":
			g.Title = v.(string)
		case "description":
			g.Description = v.(string)
		case "link":
			g.Link = v.(string)
		case "price":
			p := v.(float64)
			g.Price = &p
		case "priority":
			g.Priority = v.(string)
		}
	}
	g.UpdatedAt = time.Now()
	return nil
}

func (m *mockGiftRepo) Delete(_ context.Context, giftID string) error {
	delete(m.gifts, giftID)
	return nil
}

// Reserve 与 GORM 实现保持同一条件语义：
// 无预留人或预留人即 userID 时命中
func (m *mockGiftRepo) Reserve(_ context.Context, giftID, userID string) (bool, error) {
	g, ok := m.gifts[giftID]
	if !ok {
		return false, nil
	}
	if g.ReservedByUserID != nil && *g.ReservedByUserID != userID {
		return false, nil
	}
	g.ReservedByUserID = &userID
	g.UpdatedAt = time.Now()
	return true, nil
}

func (m *mockGiftRepo) Unreserve(_ context.Context, giftID, userID string) (bool, error) {
	g, ok := m.gifts[giftID]
	if !ok {
		return false, nil
	}
	if g.ReservedByUserID == nil || *g.ReservedByUserID != userID {
		return false, nil
	}
	g.ReservedByUserID = nil
	g.UpdatedAt = time.Now()
	return true, nil
}

// ── 测试用聚合 ──

type mockRepoSet struct {
	family *mockFamilyRepo
	user   *mockUserRepo
	gift   *mockGiftRepo
	repo   *repository.Repository
}

func newMockRepoSet() *mockRepoSet {
	family := newMockFamilyRepo()
	user := newMockUserRepo()
	gift := newMockGiftRepo()
	return &mockRepoSet{
		family: family,
		user:   user,
		gift:   gift,
		repo: &repository.Repository{
			Family: family,
			User:   user,
			Gift:   gift,
		},
	}
}

// createFamilyFixture 预置一个家庭和两位成员（主人 + 家人）
func (s *mockRepoSet) createFamilyFixture(code string) (*model.Family, *model.User, *model.User) {
	family := &model.Family{Name: "测试家庭", Code: code}
	_ = s.family.Create(nil, family)

	owner := &model.User{FamilyID: family.FamilyID, DisplayName: "主人"}
	_ = s.user.Create(nil, owner)
	other := &model.User{FamilyID: family.FamilyID, DisplayName: "家人"}
	_ = s.user.Create(nil, other)

	return family, owner, other
}

// createMember 向既有家庭追加一位成员
func (s *mockRepoSet) createMember(familyID, displayName string) *model.User {
	user := &model.User{FamilyID: familyID, DisplayName: displayName}
	_ = s.user.Create(nil, user)
	return user
}

// createGiftFixture 为 owner 预置一件礼物
func (s *mockRepoSet) createGiftFixture(owner *model.User, title string) *model.Gift {
	gift := &model.Gift{
		FamilyID:    owner.FamilyID,
		OwnerUserID: owner.UserID,
		Title:       title,
		Priority:    model.PriorityMedium,
	}
	_ = s.gift.Create(nil, gift)
	return gift
}
