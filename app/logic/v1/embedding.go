package v1

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/linkvault-ai/linkvault/app/core"
	"github.com/linkvault-ai/linkvault/pkg/ai"
	"github.com/linkvault-ai/linkvault/pkg/chunker"
	"github.com/linkvault-ai/linkvault/pkg/errors"
	"github.com/linkvault-ai/linkvault/pkg/types"
)

type EmbeddingLogic struct {
	UserInfo
	ctx  context.Context
	core *core.Core
}

func NewEmbeddingLogic(ctx context.Context, core *core.Core) *EmbeddingLogic {
	return &EmbeddingLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx),
	}
}

// GenerateEmbeddings 向量化一组文本，Model 标识实际产出的后端
// chunk 为 false 时跳过切片，每条输入原样对应一个向量
func (l *EmbeddingLogic) GenerateEmbeddings(texts []string, chunk bool, chunkSize, overlap int) (*types.EmbeddingResult, error) {
	if len(texts) == 0 {
		return nil, errors.InvalidInput("EmbeddingLogic.GenerateEmbeddings", "texts is required", nil)
	}

	var chunks []types.Chunk
	if chunk {
		if chunkSize == 0 {
			chunkSize = chunker.DefaultChunkSize
		}
		if err := chunker.ValidateChunkSize(chunkSize); err != nil {
			return nil, errors.InvalidInput("EmbeddingLogic.GenerateEmbeddings", err.Error(), err)
		}
		if overlap < 0 {
			overlap = chunker.DefaultOverlap
		}
		chunks = chunker.Split(texts, chunkSize, overlap)
	} else {
		chunks = passthroughChunks(texts)
	}
	inputs := make([]string, 0, len(chunks))
	for _, c := range chunks {
		inputs = append(inputs, c.Text)
	}

	vectors, model, err := l.core.Embedder().Embed(l.ctx, inputs)
	if err != nil {
		return nil, errors.New("EmbeddingLogic.GenerateEmbeddings.Embed", "failed to generate embeddings", err)
	}

	items := make([]types.EmbeddingItem, 0, len(chunks))
	for i, c := range chunks {
		items = append(items, types.EmbeddingItem{
			Text:        c.Text,
			Embedding:   vectors[i],
			ChunkIndex:  c.ChunkIndex,
			ParentIndex: c.ParentIndex,
		})
	}

	return &types.EmbeddingResult{
		Items:       items,
		Model:       model,
		Dimensions:  l.core.Embedder().Dimensions(),
		Chunked:     chunk,
		TotalChunks: len(items),
	}, nil
}

// passthroughChunks 不切片时的退化形态，保持和切片结果一致的下标语义
func passthroughChunks(texts []string) []types.Chunk {
	out := make([]types.Chunk, 0, len(texts))
	for i, text := range texts {
		out = append(out, types.Chunk{
			Text:        text,
			ChunkIndex:  0,
			ParentIndex: i,
		})
	}
	return out
}

// EmbedQuery 向量化单条查询文本
func (l *EmbeddingLogic) EmbedQuery(query string) (*types.QueryEmbeddingResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.InvalidInput("EmbeddingLogic.EmbedQuery", "query is required", nil)
	}
	if len(query) > ai.MaxTotalInputChars {
		return nil, errors.InvalidInput("EmbeddingLogic.EmbedQuery", "query exceeds the input length limit", nil)
	}

	vector, model, err := l.core.Embedder().EmbedQuery(l.ctx, query)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.Timeout("EmbeddingLogic.EmbedQuery", "embedding timed out", err)
		}
		return nil, errors.New("EmbeddingLogic.EmbedQuery.Embed", "failed to embed query", err)
	}

	return &types.QueryEmbeddingResult{
		Query:      query,
		Embedding:  vector,
		Model:      model,
		Dimensions: l.core.Embedder().Dimensions(),
	}, nil
}

// GetLinkEmbeddings 返回某个链接当前持久化的全部切片
func (l *EmbeddingLogic) GetLinkEmbeddings(linkID string) ([]types.LinkChunk, error) {
	if _, err := l.core.Store().LinkStore().Get(l.ctx, l.GetUserID(), linkID); err != nil {
		return nil, errors.New("EmbeddingLogic.GetLinkEmbeddings.LinkStore.Get", "link not found", err).Code(http.StatusNotFound)
	}

	chunks, err := l.core.Store().LinkChunkStore().List(l.ctx, linkID)
	if err != nil {
		return nil, errors.New("EmbeddingLogic.GetLinkEmbeddings.LinkChunkStore.List", "failed to list link chunks", err)
	}
	return chunks, nil
}
