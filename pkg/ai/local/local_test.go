package local

import (
	"context"
	"math"
	"testing"
)

const testDimensions = 3072

func TestEmbedDeterministic(t *testing.T) {
	driver := New(testDimensions)
	text := "The same input text must always produce the exact same vector."

	first, err := driver.Embed(context.Background(), []string{text})
	if err != nil {
		t.Fatal(err)
	}
	second, err := driver.Embed(context.Background(), []string{text})
	if err != nil {
		t.Fatal(err)
	}

	for i := range first[0] {
		if first[0][i] != second[0][i] {
			t.Fatalf("vectors differ at dimension %d: %v vs %v", i, first[0][i], second[0][i])
		}
	}
}

func TestEmbedDimensions(t *testing.T) {
	driver := New(testDimensions)

	vectors, err := driver.Embed(context.Background(), []string{"alpha beta gamma", "delta"})
	if err != nil {
		t.Fatal(err)
	}

	if len(vectors) != 2 {
		t.Fatalf("expected one vector per input, got %d", len(vectors))
	}
	for i, vec := range vectors {
		if len(vec) != testDimensions {
			t.Errorf("vector %d has %d dimensions, want %d", i, len(vec), testDimensions)
		}
	}
}

func TestEmbedUnitNorm(t *testing.T) {
	driver := New(testDimensions)

	vectors, err := driver.Embed(context.Background(), []string{"vectors from non-empty text are normalized to unit length"})
	if err != nil {
		t.Fatal(err)
	}

	var sumSq float64
	for _, v := range vectors[0] {
		sumSq += float64(v) * float64(v)
	}
	norm := math.Sqrt(sumSq)
	if math.Abs(norm-1.0) > 1e-4 {
		t.Errorf("L2 norm = %f, want 1.0", norm)
	}
}

func TestEmbedEmptyInputIsZeroVector(t *testing.T) {
	driver := New(testDimensions)

	// tokens of length <= 2 are dropped, so "a b" is effectively empty too
	for _, text := range []string{"", "   ", "a b of"} {
		vectors, err := driver.Embed(context.Background(), []string{text})
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range vectors[0] {
			if v != 0 {
				t.Fatalf("input %q: expected zero vector, found %v at dimension %d", text, v, i)
			}
		}
	}
}

func TestEmbedDifferentTextsDiffer(t *testing.T) {
	driver := New(testDimensions)

	vectors, err := driver.Embed(context.Background(), []string{
		"completely unrelated subject matter about astronomy and telescopes",
		"recipes for sourdough bread require patience and good flour",
	})
	if err != nil {
		t.Fatal(err)
	}

	same := true
	for i := range vectors[0] {
		if vectors[0][i] != vectors[1][i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different inputs produced identical vectors")
	}
}

func TestEmbedCancelledContext(t *testing.T) {
	driver := New(testDimensions)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := driver.Embed(ctx, []string{"text"}); err == nil {
		t.Error("expected error from cancelled context")
	}
}
