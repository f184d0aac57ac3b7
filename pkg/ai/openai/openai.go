package openai

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
	"github.com/samber/lo"
)

const NAME = "openai"

type Driver struct {
	client     *openai.Client
	model      string
	dimensions int
}

func New(token, baseURL, model string, dimensions int) *Driver {
	cfg := openai.DefaultConfig(token)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Driver{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		dimensions: dimensions,
	}
}

func (s *Driver) Model() string {
	return s.model
}

func (s *Driver) Dimensions() int {
	return s.dimensions
}

func (s *Driver) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	slog.Debug("Embedding", slog.String("driver", NAME), slog.Int("texts", len(texts)))

	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model:      openai.EmbeddingModel(s.model),
		Dimensions: s.dimensions,
		Input:      texts,
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating embedding: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding results count %d not matched input count %d", len(resp.Data), len(texts))
	}

	return lo.Map(resp.Data, func(item openai.Embedding, _ int) []float32 {
		return item.Embedding
	}), nil
}
