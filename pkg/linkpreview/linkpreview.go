package linkpreview

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dyatlov/go-opengraph/opengraph"
)

var (
	ErrInvalidURL = errors.New("链接格式无效")
	ErrFetchFail  = errors.New("获取链接内容失败")
)

// 抓取上限：商品页通常在 head 中声明 OG 标签，1MB 足够
const maxBodyBytes = 1 << 20

// Preview 链接预览结果（用于客户端添加礼物时预填标题等信息）
type Preview struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
}

// Fetcher 抓取目标页面并解析 OpenGraph 标签
type Fetcher struct {
	client *http.Client
}

// NewFetcher 创建 Fetcher，超时由调用方统一指定
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch 抓取 rawURL 并返回 OpenGraph 预览信息
// 仅允许 http/https 链接；响应体读取有上限，防止超大页面拖垮请求
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Preview, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, ErrInvalidURL
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, ErrFetchFail
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, ErrFetchFail
	}

	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(io.LimitReader(res.Body, maxBodyBytes)); err != nil {
		return nil, ErrFetchFail
	}

	p := &Preview{
		Title:       og.Title,
		Description: og.Description,
		SiteName:    og.SiteName,
	}
	if len(og.Images) > 0 && og.Images[0] != nil {
		p.Image = og.Images[0].URL
	}
	return p, nil
}
