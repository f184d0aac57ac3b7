// Package local implements a deterministic hashing-based embedder used when
// no remote provider is configured or reachable. It has no learned
// semantics; it only needs to be stable and cheap.
package local

import (
	"context"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const NAME = "local-hash"

const variants = 3

type Driver struct {
	dimensions int
}

func New(dimensions int) *Driver {
	return &Driver{dimensions: dimensions}
}

func (d *Driver) Model() string {
	return NAME
}

func (d *Driver) Dimensions() int {
	return d.dimensions
}

func (d *Driver) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, d.embedOne(text))
	}
	return out, nil
}

func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return ' '
		}
		return unicode.ToLower(r)
	}, text)

	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func hashToken(tok string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(tok))
	return h.Sum64()
}

// embedOne scatters TF-weighted cos(hash) values over variant slots and
// L2-normalizes the result. Identical input always yields identical output.
func (d *Driver) embedOne(text string) []float32 {
	vec := make([]float32, d.dimensions)

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return vec
	}

	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}

	total := float64(len(tokens))
	for word, count := range freq {
		weight := float64(count) / total
		for variant := 0; variant < variants; variant++ {
			h := hashToken(word + strconv.Itoa(variant))
			slot := h % uint64(d.dimensions)
			vec[slot] += float32(weight * math.Cos(float64(h)))
		}
	}

	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	if sumSq == 0 {
		return vec
	}

	norm := float32(math.Sqrt(sumSq))
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
