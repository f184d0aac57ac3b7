package types

import (
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
)

// 任务状态流转: pending -> processing -> done / failed
type TaskStatus string

const (
	TASK_STATUS_PENDING    TaskStatus = "pending"
	TASK_STATUS_PROCESSING TaskStatus = "processing"
	TASK_STATUS_DONE       TaskStatus = "done"
	TASK_STATUS_FAILED     TaskStatus = "failed"
)

func (s TaskStatus) String() string {
	return string(s)
}

type TaskType string

const (
	TASK_TYPE_LINK_METADATA   TaskType = "link_metadata"
	TASK_TYPE_LINK_EMBEDDINGS TaskType = "link_embeddings"
	TASK_TYPE_REFRESH_LINK    TaskType = "refresh_link_content"
	TASK_TYPE_NOTE_EMBEDDINGS TaskType = "note_embeddings"
)

func (t TaskType) String() string {
	return string(t)
}

type EntityType string

const (
	ENTITY_TYPE_LINK EntityType = "link"
	ENTITY_TYPE_NOTE EntityType = "note"
)

const DEFAULT_TASK_MAX_RETRIES = 3

// BackgroundTask 数据表结构
// 任务身份由 (entity_id, task_type) 决定，重复入队由 worker 侧做安全处理
type BackgroundTask struct {
	ID           string          `json:"id" db:"id"`
	UserID       string          `json:"user_id" db:"user_id"`
	TaskType     TaskType        `json:"task_type" db:"task_type"`
	EntityType   EntityType      `json:"entity_type" db:"entity_type"`
	EntityID     string          `json:"entity_id" db:"entity_id"`
	Payload      json.RawMessage `json:"payload" db:"payload"`
	Status       TaskStatus      `json:"status" db:"status"`
	ErrorMessage string          `json:"error_message" db:"error_message"`
	Priority     int             `json:"priority" db:"priority"`
	RetryCount   int             `json:"retry_count" db:"retry_count"`
	MaxRetries   int             `json:"max_retries" db:"max_retries"`
	CreatedAt    int64           `json:"created_at" db:"created_at"`
	UpdatedAt    int64           `json:"updated_at" db:"updated_at"`
}

// EntityTaskState 单个实体最近一次任务的状态快照
type EntityTaskState struct {
	EntityID  string     `json:"entity_id" db:"entity_id"`
	Status    TaskStatus `json:"status" db:"status"`
	CreatedAt int64      `json:"created_at" db:"created_at"`
}

// EnrichStatus UI 轮询用的状态聚合
type EnrichStatus struct {
	HasChunks    bool `json:"has_chunks"`
	IsProcessing bool `json:"is_processing"`
	IsPending    bool `json:"is_pending"`
	HasFailed    bool `json:"has_failed"`
}

type ListTaskOptions struct {
	UserID     string
	EntityID   string
	EntityType EntityType
	TaskType   TaskType
	Status     []TaskStatus
}

func (opts ListTaskOptions) Apply(query *sq.SelectBuilder) {
	if opts.UserID != "" {
		*query = query.Where(sq.Eq{"user_id": opts.UserID})
	}
	if opts.EntityID != "" {
		*query = query.Where(sq.Eq{"entity_id": opts.EntityID})
	}
	if opts.EntityType != "" {
		*query = query.Where(sq.Eq{"entity_type": opts.EntityType})
	}
	if opts.TaskType != "" {
		*query = query.Where(sq.Eq{"task_type": opts.TaskType})
	}
	if len(opts.Status) > 0 {
		*query = query.Where(sq.Eq{"status": opts.Status})
	}
}
