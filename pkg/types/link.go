package types

import (
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// Link 数据表结构
// embedding / full_content 在创建后由后台任务异步补全
type Link struct {
	ID          string           `json:"id" db:"id"`
	UserID      string           `json:"user_id" db:"user_id"`
	URL         string           `json:"url" db:"url"`
	Name        string           `json:"name" db:"name"`
	Description string           `json:"description" db:"description"`
	FolderID    string           `json:"folder_id" db:"folder_id"`
	TagIDs      pq.StringArray   `json:"tag_ids" db:"tag_ids"`
	Favicon     string           `json:"favicon" db:"favicon"`
	Metadata    json.RawMessage  `json:"metadata" db:"metadata"`
	Embedding   *pgvector.Vector `json:"embedding,omitempty" db:"embedding"`
	FullContent string           `json:"full_content" db:"full_content"`
	ContentType string           `json:"content_type" db:"content_type"`
	Language    string           `json:"language" db:"language"`
	WordCount   int              `json:"word_count" db:"word_count"`
	CreatedAt   int64            `json:"created_at" db:"created_at"`
	UpdatedAt   int64            `json:"updated_at" db:"updated_at"`
}

// UpdateLinkEnrichArgs 富化阶段写回的字段，均为增量补全
type UpdateLinkEnrichArgs struct {
	Name        string
	Description string
	Favicon     string
	Metadata    json.RawMessage
	FullContent string
	ContentType string
	Language    string
	WordCount   int
}

type ListLinkOptions struct {
	UserID   string
	FolderID string
	IDs      []string
}

func (opts ListLinkOptions) Apply(query *sq.SelectBuilder) {
	if opts.UserID != "" {
		*query = query.Where(sq.Eq{"user_id": opts.UserID})
	}
	if opts.FolderID != "" {
		*query = query.Where(sq.Eq{"folder_id": opts.FolderID})
	}
	if len(opts.IDs) > 0 {
		*query = query.Where(sq.Eq{"id": opts.IDs})
	}
}
