package process

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"

	"github.com/linkvault-ai/linkvault/pkg/chunker"
	"github.com/linkvault-ai/linkvault/pkg/types"
	"github.com/linkvault-ai/linkvault/pkg/utils"
)

// taskDeadline 整条流水线的硬上限，独立于各阶段自身的超时
const taskDeadline = 30 * time.Second

func (p *Process) handle(task types.BackgroundTask) error {
	ctx, cancel := context.WithTimeout(p.ctx, taskDeadline)
	defer cancel()

	switch task.TaskType {
	case types.TASK_TYPE_LINK_METADATA:
		return p.enrichLinkMetadata(ctx, task)
	case types.TASK_TYPE_LINK_EMBEDDINGS, types.TASK_TYPE_REFRESH_LINK:
		return p.enrichLinkContent(ctx, task)
	case types.TASK_TYPE_NOTE_EMBEDDINGS:
		return p.embedNote(ctx, task)
	default:
		return fmt.Errorf("unknown task type %s", task.TaskType)
	}
}

// fetchAndExtract 抓取并解析链接页面，返回原始 html 供调用方判断抓取是否成功
func (p *Process) fetchAndExtract(ctx context.Context, link *types.Link) (string, types.ExtractResult, error) {
	fetchTimer := p.core.Metrics().EnrichStageTimer("fetch")
	html, err := p.core.Fetcher().Fetch(ctx, link.URL)
	fetchTimer.ObserveDuration()
	if err != nil {
		return "", types.ExtractResult{}, err
	}

	extractTimer := p.core.Metrics().EnrichStageTimer("extract")
	defer extractTimer.ObserveDuration()
	return html, p.core.Extractor().Extract(html, link.URL), nil
}

// pageUnavailable 抓取重试耗尽后返回空 html，此时 extractor 只剩兜底占位内容
func pageUnavailable(html string) bool {
	return strings.TrimSpace(html) == ""
}

func enrichArgsFrom(result types.ExtractResult) (types.UpdateLinkEnrichArgs, error) {
	raw, err := json.Marshal(result.Metadata)
	if err != nil {
		return types.UpdateLinkEnrichArgs{}, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	args := types.UpdateLinkEnrichArgs{
		Name:        result.Metadata.Title,
		Description: result.Metadata.Description,
		Favicon:     result.Favicon,
		Metadata:    raw,
	}
	if result.FullContent != nil {
		args.FullContent = result.FullContent.FullText
		args.ContentType = result.FullContent.ContentType.String()
		args.Language = result.FullContent.Language
		args.WordCount = result.FullContent.WordCount
	}
	return args, nil
}

func (p *Process) enrichLinkMetadata(ctx context.Context, task types.BackgroundTask) error {
	link, err := p.core.Store().LinkStore().Get(ctx, task.UserID, task.EntityID)
	if err != nil {
		return fmt.Errorf("failed to load link: %w", err)
	}

	html, result, err := p.fetchAndExtract(ctx, link)
	if err != nil {
		return err
	}
	// 页面完全抓不回来时不写库，占位内容不能覆盖已有数据
	if pageUnavailable(html) {
		return fmt.Errorf("page unavailable: %s", link.URL)
	}

	args, err := enrichArgsFrom(result)
	if err != nil {
		return err
	}

	if err = p.core.Store().LinkStore().UpdateEnrichment(ctx, link.ID, args); err != nil {
		return fmt.Errorf("failed to persist enrichment: %w", err)
	}
	return nil
}

// enrichLinkContent 完整流水线：抓取 → 解析 → 切片 → 向量化 → 持久化
// 元信息先落库，向量化失败不影响已写入的部分
func (p *Process) enrichLinkContent(ctx context.Context, task types.BackgroundTask) error {
	link, err := p.core.Store().LinkStore().Get(ctx, task.UserID, task.EntityID)
	if err != nil {
		return fmt.Errorf("failed to load link: %w", err)
	}

	html, result, err := p.fetchAndExtract(ctx, link)
	if err != nil {
		return err
	}
	// 抓取失败交给重试，已有的元信息、切片和向量保持原样
	if pageUnavailable(html) {
		return fmt.Errorf("page unavailable: %s", link.URL)
	}

	args, err := enrichArgsFrom(result)
	if err != nil {
		return err
	}
	if err = p.core.Store().LinkStore().UpdateEnrichment(ctx, link.ID, args); err != nil {
		return fmt.Errorf("failed to persist enrichment: %w", err)
	}

	if result.FullContent == nil || result.FullContent.FullText == "" {
		// 页面抓不到正文，基础记录保持可用，不算失败
		slog.Info("Link has no extractable content, skipping embeddings",
			slog.String("link_id", link.ID), slog.String("component", "Process.enrichLinkContent"))
		return nil
	}

	cfg := p.core.Cfg().Enrich
	pieces := chunker.Chunk(result.FullContent.FullText, cfg.ChunkSize, cfg.ChunkOverlap)

	embedTimer := p.core.Metrics().EnrichStageTimer("embed")
	vectors, model, err := p.core.Embedder().Embed(ctx, pieces)
	embedTimer.ObserveDuration()
	if err != nil {
		p.core.Metrics().EmbeddingErrorInc(model)
		return fmt.Errorf("failed to embed link content: %w", err)
	}

	chunks := make([]types.LinkChunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, types.LinkChunk{
			ID:             utils.GenUniqIDStr(),
			LinkID:         link.ID,
			UserID:         link.UserID,
			ChunkIndex:     i,
			Chunk:          piece,
			Embedding:      pgvector.NewVector(vectors[i]),
			Model:          model,
			OriginalLength: len(result.FullContent.FullText),
		})
	}

	// 旧切片整组替换，链接级向量取切片均值
	persistTimer := p.core.Metrics().EnrichStageTimer("persist")
	defer persistTimer.ObserveDuration()
	return p.core.Store().Transaction(ctx, func(ctx context.Context) error {
		if err := p.core.Store().LinkChunkStore().BatchDelete(ctx, link.ID); err != nil {
			return fmt.Errorf("failed to drop previous chunks: %w", err)
		}
		if err := p.core.Store().LinkChunkStore().BatchCreate(ctx, chunks); err != nil {
			return fmt.Errorf("failed to persist chunks: %w", err)
		}
		if err := p.core.Store().LinkStore().UpdateEmbedding(ctx, link.ID, pgvector.NewVector(meanVector(vectors))); err != nil {
			return fmt.Errorf("failed to persist link embedding: %w", err)
		}
		return nil
	})
}

func (p *Process) embedNote(ctx context.Context, task types.BackgroundTask) error {
	note, err := p.core.Store().NoteStore().Get(ctx, task.UserID, task.EntityID)
	if err != nil {
		return fmt.Errorf("failed to load note: %w", err)
	}

	text := note.Content
	if note.Title != "" {
		text = note.Title + "\n\n" + note.Content
	}

	embedTimer := p.core.Metrics().EnrichStageTimer("embed")
	vector, model, err := p.core.Embedder().EmbedQuery(ctx, text)
	embedTimer.ObserveDuration()
	if err != nil {
		p.core.Metrics().EmbeddingErrorInc(model)
		return fmt.Errorf("failed to embed note: %w", err)
	}

	if err = p.core.Store().NoteStore().UpdateEmbedding(ctx, note.ID, pgvector.NewVector(vector)); err != nil {
		return fmt.Errorf("failed to persist note embedding: %w", err)
	}
	return nil
}

// meanVector 对切片向量取均值并做 L2 归一化
func meanVector(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}

	out := make([]float32, len(vectors[0]))
	for _, vec := range vectors {
		for i, v := range vec {
			out[i] += v
		}
	}

	var sumSq float64
	for i := range out {
		out[i] /= float32(len(vectors))
		sumSq += float64(out[i]) * float64(out[i])
	}
	if sumSq == 0 {
		return out
	}

	norm := float32(math.Sqrt(sumSq))
	for i := range out {
		out[i] /= norm
	}
	return out
}
