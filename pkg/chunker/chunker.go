// Package chunker splits long text into overlapping, sentence-aware segments
// sized for an embedding provider's input window.
package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/linkvault-ai/linkvault/pkg/types"
)

const (
	DefaultChunkSize = 500
	DefaultOverlap   = 50

	MinChunkSize = 50
	MaxChunkSize = 8000

	// a chunk is only closed early once it carries this much text
	minCloseLength = 100
	// trailing chunks at or below this trimmed length are dropped
	minTailLength = 50
)

var sentenceBoundary = regexp.MustCompile(`([.!?])\s+`)

func ValidateChunkSize(size int) error {
	if size < MinChunkSize || size > MaxChunkSize {
		return fmt.Errorf("chunk size must be between %d and %d, got %d", MinChunkSize, MaxChunkSize, size)
	}
	return nil
}

// splitSentences splits after ./!/? followed by whitespace, keeping the
// terminator with its sentence.
func splitSentences(text string) []string {
	marked := sentenceBoundary.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// Chunk splits text into segments bounded by chunkSize. Chunks overlap by
// roughly overlap/5 words. Text at or below chunkSize passes through as a
// single chunk unchanged.
func Chunk(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}

	if len(text) <= chunkSize {
		return []string{text}
	}

	overlapWords := overlap / 5

	var (
		chunks  []string
		current strings.Builder
	)

	flush := func(seed string) {
		chunks = append(chunks, current.String())
		current.Reset()
		if seed != "" {
			current.WriteString(seed)
		}
	}

	for _, sentence := range splitSentences(text) {
		sep := ""
		if current.Len() > 0 {
			sep = " "
		}

		if current.Len()+len(sep)+len(sentence) > chunkSize && current.Len() > minCloseLength {
			seed := trailingWords(current.String(), overlapWords)
			flush(seed)
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(sentence)
			continue
		}

		current.WriteString(sep)
		current.WriteString(sentence)
	}

	if current.Len() > 0 {
		tail := strings.TrimSpace(current.String())
		// embedding a near-empty tail is wasted work
		if len(tail) > minTailLength || len(chunks) == 0 {
			chunks = append(chunks, current.String())
		}
	}

	return chunks
}

func trailingWords(s string, n int) string {
	if n <= 0 {
		return ""
	}
	words := strings.Fields(s)
	if len(words) > n {
		words = words[len(words)-n:]
	}
	return strings.Join(words, " ")
}

// Split chunks a batch of texts, recording which input each chunk belongs to.
func Split(texts []string, chunkSize, overlap int) []types.Chunk {
	var out []types.Chunk
	for parentIdx, text := range texts {
		for chunkIdx, piece := range Chunk(text, chunkSize, overlap) {
			out = append(out, types.Chunk{
				Text:        piece,
				ChunkIndex:  chunkIdx,
				ParentIndex: parentIdx,
			})
		}
	}
	return out
}
