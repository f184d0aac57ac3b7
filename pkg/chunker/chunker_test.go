package chunker

import (
	"strings"
	"testing"
)

func TestValidateChunkSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"minimum allowed", MinChunkSize, false},
		{"maximum allowed", MaxChunkSize, false},
		{"default", DefaultChunkSize, false},
		{"below minimum", MinChunkSize - 1, true},
		{"above maximum", MaxChunkSize + 1, true},
		{"zero", 0, true},
		{"negative", -100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunkSize(tt.size)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChunkSize(%d) error = %v, wantErr %v", tt.size, err, tt.wantErr)
			}
		})
	}
}

func TestChunkPassthrough(t *testing.T) {
	text := "Short text that fits in one chunk."
	chunks := Chunk(text, DefaultChunkSize, DefaultOverlap)

	if len(chunks) != 1 {
		t.Fatalf("expected single chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("short input must pass through unchanged, got %q", chunks[0])
	}
}

func TestChunkBounds(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString("This is sentence number one of the long running test document. ")
	}
	text := b.String()

	chunkSize := 500
	chunks := Chunk(text, chunkSize, DefaultOverlap)

	if len(chunks) < 2 {
		t.Fatalf("long input should produce multiple chunks, got %d", len(chunks))
	}

	for i, c := range chunks {
		// one oversized sentence may overflow, plain prose must not
		if len(c) > chunkSize+100 {
			t.Errorf("chunk %d length %d far exceeds chunk size %d", i, len(c), chunkSize)
		}
		if strings.TrimSpace(c) == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestChunkOversizedSentence(t *testing.T) {
	// a single sentence longer than chunkSize cannot be split at a boundary
	text := strings.Repeat("word ", 200) + "end."
	chunks := Chunk(text, 100, 0)

	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}
	joined := strings.Join(chunks, " ")
	if !strings.Contains(joined, "end.") {
		t.Error("sentence terminator lost during chunking")
	}
}

func TestChunkContentPreserved(t *testing.T) {
	sentences := []string{
		"The quick brown fox jumps over the lazy dog near the river bank today.",
		"Cloud infrastructure costs continue to rise across every major provider.",
		"She finished the marathon in under four hours despite the heavy rain.",
		"Database indexes can dramatically speed up read-heavy workloads at scale.",
		"The committee postponed its final decision until the next quarterly meeting.",
	}
	text := strings.Join(sentences, " ")

	chunks := Chunk(text, 150, 50)
	joined := strings.Join(chunks, " ")

	for _, s := range sentences {
		if !strings.Contains(joined, s) {
			t.Errorf("sentence missing from chunk output: %q", s)
		}
	}
}

func TestChunkDropsTinyTail(t *testing.T) {
	// build text whose final sentence leaves a tiny trailing chunk
	var b strings.Builder
	for i := 0; i < 10; i++ {
		b.WriteString("A reasonably sized sentence that carries enough characters to matter here. ")
	}
	b.WriteString("End.")

	chunks := Chunk(b.String(), 200, 0)
	last := strings.TrimSpace(chunks[len(chunks)-1])
	if len(last) <= minTailLength && len(chunks) > 1 {
		t.Errorf("trailing chunk of length %d should have been dropped", len(last))
	}
}

func TestChunkDefaults(t *testing.T) {
	text := strings.Repeat("Sentence goes here with plenty of words inside it. ", 30)

	got := Chunk(text, 0, -1)
	want := Chunk(text, DefaultChunkSize, DefaultOverlap)

	if len(got) != len(want) {
		t.Fatalf("default fallback mismatch: %d chunks vs %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("chunk %d differs between explicit and implied defaults", i)
		}
	}
}

func TestSplitIndices(t *testing.T) {
	texts := []string{
		"First document. " + strings.Repeat("More text for the first document goes right here. ", 30),
		"Second document, short.",
	}

	chunks := Split(texts, 200, 50)
	if len(chunks) < 3 {
		t.Fatalf("expected first document to split plus one chunk for the second, got %d", len(chunks))
	}

	seenParents := map[int]bool{}
	lastIndexByParent := map[int]int{}
	for _, c := range chunks {
		seenParents[c.ParentIndex] = true
		if prev, ok := lastIndexByParent[c.ParentIndex]; ok && c.ChunkIndex != prev+1 {
			t.Errorf("chunk indices not sequential for parent %d: %d after %d", c.ParentIndex, c.ChunkIndex, prev)
		}
		lastIndexByParent[c.ParentIndex] = c.ChunkIndex
	}

	if !seenParents[0] || !seenParents[1] {
		t.Errorf("both inputs must be represented, got parents %v", seenParents)
	}
	if lastIndexByParent[1] != 0 {
		t.Errorf("short second input should be a single chunk, last index = %d", lastIndexByParent[1])
	}
}

func TestSplitSentencesKeepsTerminators(t *testing.T) {
	sentences := splitSentences("One two. Three four! Five six? Seven")
	if len(sentences) != 4 {
		t.Fatalf("expected 4 sentences, got %d: %v", len(sentences), sentences)
	}
	for i, want := range []string{"One two.", "Three four!", "Five six?", "Seven"} {
		if sentences[i] != want {
			t.Errorf("sentence %d = %q, want %q", i, sentences[i], want)
		}
	}
}
