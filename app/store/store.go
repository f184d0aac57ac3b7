package store

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/linkvault-ai/linkvault/pkg/types"
)

type LinkStore interface {
	Create(ctx context.Context, data types.Link) error
	Get(ctx context.Context, userID, id string) (*types.Link, error)
	List(ctx context.Context, opts types.ListLinkOptions, page, pageSize uint64) ([]types.Link, error)
	UpdateEnrichment(ctx context.Context, id string, args types.UpdateLinkEnrichArgs) error
	UpdateEmbedding(ctx context.Context, id string, embedding pgvector.Vector) error
	Delete(ctx context.Context, userID, id string) error
}

type NoteStore interface {
	Create(ctx context.Context, data types.Note) error
	Get(ctx context.Context, userID, id string) (*types.Note, error)
	List(ctx context.Context, userID string, page, pageSize uint64) ([]types.Note, error)
	Update(ctx context.Context, userID, id, title, content string) error
	UpdateEmbedding(ctx context.Context, id string, embedding pgvector.Vector) error
	Delete(ctx context.Context, userID, id string) error
}

type LinkChunkStore interface {
	BatchCreate(ctx context.Context, chunks []types.LinkChunk) error
	BatchDelete(ctx context.Context, linkID string) error
	List(ctx context.Context, linkID string) ([]types.LinkChunk, error)
	// ListLinkIDsWithChunks 集合查询：给定 id 集合，返回其中已有切片的部分
	ListLinkIDsWithChunks(ctx context.Context, linkIDs []string) ([]string, error)
}

type BackgroundTaskStore interface {
	Create(ctx context.Context, data types.BackgroundTask) error
	Get(ctx context.Context, id string) (*types.BackgroundTask, error)
	List(ctx context.Context, opts types.ListTaskOptions, page, pageSize uint64) ([]types.BackgroundTask, error)
	ListPending(ctx context.Context, userID string, limit uint64) ([]types.BackgroundTask, error)
	UpdateStatus(ctx context.Context, id string, status types.TaskStatus) error
	MarkFailed(ctx context.Context, id, errorMessage string) error
	SetRetryCount(ctx context.Context, id string, retryCount int) error
	// RequeueStaleProcessing 回收 processing 状态下超过留置窗口未更新的任务
	RequeueStaleProcessing(ctx context.Context, before int64) (int64, error)
	// ListLatestByEntities 集合查询：每个实体最近一次任务的状态
	ListLatestByEntities(ctx context.Context, entityIDs []string) ([]types.EntityTaskState, error)
	// ListFailedEntities 集合查询：存在失败任务的实体集合
	ListFailedEntities(ctx context.Context, entityIDs []string) ([]string, error)
}
