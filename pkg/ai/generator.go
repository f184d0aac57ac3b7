package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openaiapi "github.com/sashabaranov/go-openai"

	"github.com/linkvault-ai/linkvault/pkg/retry"
)

// MaxTotalInputChars is validated before any remote call is issued.
const MaxTotalInputChars = 100000

// Generator batches embedding requests against the primary backend and
// degrades to the deterministic fallback when the primary is unconfigured
// or exhausted its retries. Vectors from both paths share one dimension.
type Generator struct {
	primary  Embedder
	fallback Embedder
	cfg      Config
}

func NewGenerator(cfg Config, primary, fallback Embedder) *Generator {
	if fallback == nil {
		panic("ai: fallback embedder is required")
	}
	return &Generator{
		primary:  primary,
		fallback: fallback,
		cfg:      cfg.withDefaults(),
	}
}

func (g *Generator) Dimensions() int {
	return g.cfg.Dimensions
}

// statusError adapts provider API errors to the retry layer's
// classification interface.
type statusError struct {
	err  error
	code int
}

func (e *statusError) Error() string   { return e.err.Error() }
func (e *statusError) Unwrap() error   { return e.err }
func (e *statusError) StatusCode() int { return e.code }

func classify(err error) error {
	var apiErr *openaiapi.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return &statusError{err: err, code: apiErr.HTTPStatusCode}
	}
	return err
}

func validateInput(texts []string) error {
	if len(texts) == 0 {
		return fmt.Errorf("no texts to embed")
	}
	total := 0
	for _, t := range texts {
		total += len(t)
	}
	if total > MaxTotalInputChars {
		return fmt.Errorf("total input length %d exceeds the %d character limit", total, MaxTotalInputChars)
	}
	return nil
}

func (g *Generator) embedRemote(ctx context.Context, texts []string) ([][]float32, error) {
	var result [][]float32
	for batch := 0; batch*g.cfg.BatchSize < len(texts); batch++ {
		start := batch * g.cfg.BatchSize
		end := min(start+g.cfg.BatchSize, len(texts))

		vectors, err := retry.Do(ctx, func(ctx context.Context) ([][]float32, error) {
			return retry.WithTimeout(ctx, g.cfg.Timeout, func(ctx context.Context) ([][]float32, error) {
				vecs, err := g.primary.Embed(ctx, texts[start:end])
				if err != nil {
					return nil, classify(err)
				}
				return vecs, nil
			})
		})
		if err != nil {
			return nil, err
		}
		result = append(result, vectors...)
	}
	return result, nil
}

// Embed returns one vector per input text plus the model name of the backend
// that produced them.
func (g *Generator) Embed(ctx context.Context, texts []string) ([][]float32, string, error) {
	if err := validateInput(texts); err != nil {
		return nil, "", err
	}

	if g.primary != nil {
		vectors, err := g.embedRemote(ctx, texts)
		if err == nil {
			return vectors, g.primary.Model(), nil
		}
		slog.Warn("Remote embedding failed, falling back to local backend",
			slog.String("model", g.primary.Model()),
			slog.String("error", err.Error()))
	}

	vectors, err := g.fallback.Embed(ctx, texts)
	if err != nil {
		return nil, "", err
	}
	return vectors, g.fallback.Model(), nil
}

// EmbedQuery embeds a single query string, same primary/fallback logic
// without batch bookkeeping.
func (g *Generator) EmbedQuery(ctx context.Context, query string) ([]float32, string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, "", fmt.Errorf("query is empty")
	}
	vectors, model, err := g.Embed(ctx, []string{query})
	if err != nil {
		return nil, "", err
	}
	return vectors[0], model, nil
}
