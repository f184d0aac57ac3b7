package types

const (
	NO_PAGINATION = 0
)

const (
	DEFAULT_EMBEDDING_MODEL      = "text-embedding-3-large"
	DEFAULT_EMBEDDING_DIMENSIONS = 3072
)
