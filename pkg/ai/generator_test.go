package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/linkvault-ai/linkvault/pkg/ai/local"
)

type failingEmbedder struct{}

func (failingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("provider unavailable")
}
func (failingEmbedder) Model() string   { return "remote-model" }
func (failingEmbedder) Dimensions() int { return 64 }

func TestEmbedWithoutPrimaryUsesFallback(t *testing.T) {
	g := NewGenerator(Config{Dimensions: 64}, nil, local.New(64))

	vectors, model, err := g.Embed(context.Background(), []string{"hello embedding world"})
	if err != nil {
		t.Fatal(err)
	}
	if model != local.NAME {
		t.Errorf("model = %q, want %q", model, local.NAME)
	}
	if len(vectors) != 1 || len(vectors[0]) != 64 {
		t.Errorf("unexpected vector shape: %d x %d", len(vectors), len(vectors[0]))
	}
}

func TestEmbedFallsBackOnPrimaryFailure(t *testing.T) {
	g := NewGenerator(Config{Dimensions: 64}, failingEmbedder{}, local.New(64))

	vectors, model, err := g.Embed(context.Background(), []string{"first text", "second text"})
	if err != nil {
		t.Fatal(err)
	}
	if model != local.NAME {
		t.Errorf("model = %q, fallback backend must be reported", model)
	}
	if len(vectors) != 2 {
		t.Errorf("expected one vector per input, got %d", len(vectors))
	}
}

func TestEmbedRejectsEmptyInput(t *testing.T) {
	g := NewGenerator(Config{Dimensions: 64}, nil, local.New(64))

	if _, _, err := g.Embed(context.Background(), nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestEmbedRejectsOversizedInput(t *testing.T) {
	g := NewGenerator(Config{Dimensions: 64}, nil, local.New(64))

	huge := strings.Repeat("x", MaxTotalInputChars+1)
	if _, _, err := g.Embed(context.Background(), []string{huge}); err == nil {
		t.Error("expected error for input beyond the character ceiling")
	}
}

func TestEmbedQueryRejectsEmptyQuery(t *testing.T) {
	g := NewGenerator(Config{Dimensions: 32}, nil, local.New(32))

	if _, _, err := g.EmbedQuery(context.Background(), "   "); err == nil {
		t.Error("expected error for blank query")
	}
}

func TestEmbedQueryRejectsOversizedQuery(t *testing.T) {
	g := NewGenerator(Config{Dimensions: 32}, nil, local.New(32))

	huge := strings.Repeat("x", MaxTotalInputChars+1)
	if _, _, err := g.EmbedQuery(context.Background(), huge); err == nil {
		t.Error("expected error for query beyond the character ceiling")
	}
}

func TestEmbedQuery(t *testing.T) {
	g := NewGenerator(Config{Dimensions: 32}, nil, local.New(32))

	vector, model, err := g.EmbedQuery(context.Background(), "single query text")
	if err != nil {
		t.Fatal(err)
	}
	if model != local.NAME {
		t.Errorf("model = %q", model)
	}
	if len(vector) != 32 {
		t.Errorf("vector has %d dimensions, want 32", len(vector))
	}
}
