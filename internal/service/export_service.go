package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"familygifthub/backend/internal/model"
	"familygifthub/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出全家心愿单为 Excel (.xlsx)，按成员分组
//   - 刻意不输出预留状态列：导出文件可能被转发给礼物主人本人，
//     输出预留信息会提前剧透
//   - 以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportFamilyList 导出全家心愿单为 Excel
	// 返回值：buf（Excel 内容）, filename（建议文件名）, error
	ExportFamilyList(ctx context.Context, familyID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

const exportSheet = "心愿单"

// 优先级展示文案
var priorityLabels = map[string]string{
	model.PriorityHigh:   "高",
	model.PriorityMedium: "中",
	model.PriorityLow:    "低",
}

func (s *exportService) ExportFamilyList(ctx context.Context, familyID string) (*bytes.Buffer, string, error) {
	// 1. 查询家庭（文件名用）、成员与礼物
	family, err := s.repo.Family.GetByID(ctx, familyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrFamilyNotFound
		}
		s.logger.Error("查询家庭失败", zap.Error(err))
		return nil, "", err
	}

	users, err := s.repo.User.ListByFamily(ctx, familyID)
	if err != nil {
		s.logger.Error("查询家庭成员失败", zap.Error(err))
		return nil, "", err
	}

	gifts, err := s.repo.Gift.ListByFamily(ctx, familyID)
	if err != nil {
		s.logger.Error("查询家庭礼物失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 按成员分组
	giftsByOwner := make(map[string][]model.Gift)
	for _, g := range gifts {
		giftsByOwner[g.OwnerUserID] = append(giftsByOwner[g.OwnerUserID], g)
	}

	// 3. 生成 Excel：成员名作分组行，随后逐件礼物一行
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", exportSheet)

	row := 1
	setCell := func(col string, v interface{}) {
		f.SetCellValue(exportSheet, fmt.Sprintf("%s%d", col, row), v)
	}

	setCell("A", "成员")
	setCell("B", "礼物")
	setCell("C", "优先级")
	setCell("D", "价格")
	setCell("E", "链接")
	row++

	for _, u := range users {
		for _, g := range giftsByOwner[u.UserID] {
			setCell("A", u.DisplayName)
			setCell("B", g.Title)
			setCell("C", priorityLabels[g.Priority])
			if g.Price != nil {
				setCell("D", *g.Price)
			}
			if g.Link != "" {
				setCell("E", g.Link)
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s-心愿单.xlsx", family.Name)
	return buf, filename, nil
}
