package types

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// Note 数据表结构，embedding 异步补全
type Note struct {
	ID        string           `json:"id" db:"id"`
	UserID    string           `json:"user_id" db:"user_id"`
	Title     string           `json:"title" db:"title"`
	Content   string           `json:"content" db:"content"`
	FolderID  string           `json:"folder_id" db:"folder_id"`
	TagIDs    pq.StringArray   `json:"tag_ids" db:"tag_ids"`
	Embedding *pgvector.Vector `json:"embedding,omitempty" db:"embedding"`
	CreatedAt int64            `json:"created_at" db:"created_at"`
	UpdatedAt int64            `json:"updated_at" db:"updated_at"`
}
