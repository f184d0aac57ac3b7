package types

import (
	"github.com/pgvector/pgvector-go"
)

// LinkChunk 数据表结构
// 每次富化写入前先删除旧切片，整组替换
type LinkChunk struct {
	ID             string          `json:"id" db:"id"`
	LinkID         string          `json:"link_id" db:"link_id"`
	UserID         string          `json:"user_id" db:"user_id"`
	ChunkIndex     int             `json:"chunk_index" db:"chunk_index"`
	Chunk          string          `json:"chunk" db:"chunk"`
	Embedding      pgvector.Vector `json:"embedding" db:"embedding"`
	Model          string          `json:"model" db:"model"`
	OriginalLength int             `json:"original_length" db:"original_length"`
	CreatedAt      int64           `json:"created_at" db:"created_at"`
	UpdatedAt      int64           `json:"updated_at" db:"updated_at"`
}
