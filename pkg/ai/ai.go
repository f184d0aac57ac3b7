// Package ai generates fixed-dimension text embeddings, preferring a remote
// provider and degrading to a deterministic local backend.
package ai

import (
	"context"
	"time"

	"github.com/linkvault-ai/linkvault/pkg/types"
)

// Embedder converts texts into vectors of a fixed dimension.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Model() string
	Dimensions() int
}

// Config is injected at construction; nothing in this package reads
// ambient environment state.
type Config struct {
	APIKey     string        `toml:"api_key"`
	BaseURL    string        `toml:"base_url"`
	Model      string        `toml:"model"`
	Dimensions int           `toml:"dimensions"`
	Timeout    time.Duration `toml:"-"`
	TimeoutSec int           `toml:"timeout_sec"`
	BatchSize  int           `toml:"batch_size"`
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = types.DEFAULT_EMBEDDING_MODEL
	}
	if c.Dimensions <= 0 {
		c.Dimensions = types.DEFAULT_EMBEDDING_DIMENSIONS
	}
	if c.Timeout <= 0 {
		if c.TimeoutSec > 0 {
			c.Timeout = time.Duration(c.TimeoutSec) * time.Second
		} else {
			c.Timeout = 60 * time.Second
		}
	}
	if c.BatchSize <= 0 || c.BatchSize > 100 {
		c.BatchSize = 100
	}
	return c
}
