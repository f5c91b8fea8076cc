package service

import (
	"context"

	"go.uber.org/zap"

	"familygifthub/backend/pkg/linkpreview"
)

// PreviewService 链接预览业务接口
// 客户端添加礼物时粘贴商品链接，用返回的 OG 信息预填标题等字段
type PreviewService interface {
	Fetch(ctx context.Context, rawURL string) (*linkpreview.Preview, error)
}

type previewService struct {
	fetcher *linkpreview.Fetcher
	logger  *zap.Logger
}

// NewPreviewService 创建 PreviewService 实例
func NewPreviewService(fetcher *linkpreview.Fetcher, logger *zap.Logger) PreviewService {
	return &previewService{fetcher: fetcher, logger: logger}
}

func (s *previewService) Fetch(ctx context.Context, rawURL string) (*linkpreview.Preview, error) {
	preview, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		// 外部站点不可达属常态，降噪记 debug
		s.logger.Debug("链接预览失败", zap.String("url", rawURL), zap.Error(err))
		return nil, err
	}
	return preview, nil
}
