package v1

import (
	"context"

	"github.com/linkvault-ai/linkvault/app/core"
	"github.com/linkvault-ai/linkvault/pkg/errors"
	"github.com/linkvault-ai/linkvault/pkg/extract"
	"github.com/linkvault-ai/linkvault/pkg/fetch"
	"github.com/linkvault-ai/linkvault/pkg/types"
)

type MetadataLogic struct {
	UserInfo
	ctx  context.Context
	core *core.Core
}

func NewMetadataLogic(ctx context.Context, core *core.Core) *MetadataLogic {
	return &MetadataLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx),
	}
}

type MetadataResult struct {
	URL         string             `json:"url"`
	ContentType types.ContentType  `json:"content_type"`
	Metadata    types.Metadata     `json:"metadata"`
	Favicon     string             `json:"favicon"`
	FullContent *types.FullContent `json:"full_content,omitempty"`
}

// GetMetadata 同步抓取并解析目标页面
// 抓取失败时降级为 hostname 兜底内容，仅非法 URL 和整体超时向上抛错
// extractContent 为 false 时只解析元信息，跳过正文提取
func (l *MetadataLogic) GetMetadata(rawURL string, extractContent bool) (*MetadataResult, error) {
	target, err := fetch.NormalizeURL(rawURL)
	if err != nil {
		return nil, errors.Trace("MetadataLogic.GetMetadata", err)
	}

	html, err := l.core.Fetcher().Fetch(l.ctx, target)
	if err != nil {
		return nil, errors.Trace("MetadataLogic.GetMetadata", err)
	}

	var result types.ExtractResult
	if extractContent {
		result = l.core.Extractor().Extract(html, target)
	} else {
		result = l.core.Extractor().ExtractMetadata(html, target)
	}

	return &MetadataResult{
		URL:         target,
		ContentType: extract.DetectContentType(target),
		Metadata:    result.Metadata,
		Favicon:     result.Favicon,
		FullContent: result.FullContent,
	}, nil
}
