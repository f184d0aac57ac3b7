package types

// ContentType 链接内容类型，根据 URL 规则判定
type ContentType string

const (
	CONTENT_TYPE_TWEET   ContentType = "tweet"
	CONTENT_TYPE_VIDEO   ContentType = "video"
	CONTENT_TYPE_ARTICLE ContentType = "article"
	CONTENT_TYPE_WEBPAGE ContentType = "webpage"
)

func (c ContentType) String() string {
	return string(c)
}

// Metadata 页面元信息，所有字段尽力提取，允许为空
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	SiteName    string `json:"site_name"`
	Favicon     string `json:"favicon"`
	Content     string `json:"content"`
}

// FullContent 链接正文的完整提取结果
type FullContent struct {
	FullText    string      `json:"full_text"`
	ContentType ContentType `json:"content_type"`
	Author      string      `json:"author,omitempty"`
	Language    string      `json:"language,omitempty"`
	WordCount   int         `json:"word_count"`
}

// ExtractResult extractor 阶段的聚合产物
type ExtractResult struct {
	Metadata    Metadata     `json:"metadata"`
	Favicon     string       `json:"favicon"`
	FullContent *FullContent `json:"full_content"`
}

// Chunk 切片，parent_index 指向批量输入中的原文下标
type Chunk struct {
	Text        string `json:"text"`
	ChunkIndex  int    `json:"chunk_index"`
	ParentIndex int    `json:"parent_index"`
}

// EmbeddingItem 单个切片的向量化结果
type EmbeddingItem struct {
	Text        string    `json:"text"`
	Embedding   []float32 `json:"embedding"`
	ChunkIndex  int       `json:"chunk_index"`
	ParentIndex int       `json:"parent_index"`
}

// EmbeddingResult 一次向量化调用的结果，Model 标识产出后端
type EmbeddingResult struct {
	Items       []EmbeddingItem `json:"items"`
	Model       string          `json:"model"`
	Dimensions  int             `json:"dimensions"`
	Chunked     bool            `json:"chunked"`
	TotalChunks int             `json:"total_chunks"`
}

// QueryEmbeddingResult 单条查询文本的向量化结果
type QueryEmbeddingResult struct {
	Query      string    `json:"query"`
	Embedding  []float32 `json:"embedding"`
	Model      string    `json:"model"`
	Dimensions int       `json:"dimensions"`
}
