package v1

import "testing"

func TestPassthroughChunks(t *testing.T) {
	texts := []string{"first text", "second text", "third text"}

	chunks := passthroughChunks(texts)
	if len(chunks) != len(texts) {
		t.Fatalf("got %d chunks, want one per input", len(chunks))
	}

	for i, c := range chunks {
		if c.Text != texts[i] {
			t.Errorf("chunk %d text = %q, want %q", i, c.Text, texts[i])
		}
		if c.ParentIndex != i {
			t.Errorf("chunk %d parent index = %d, want %d", i, c.ParentIndex, i)
		}
		if c.ChunkIndex != 0 {
			t.Errorf("chunk %d chunk index = %d, unchunked inputs carry a single chunk", i, c.ChunkIndex)
		}
	}
}

func TestPassthroughChunksEmpty(t *testing.T) {
	if got := passthroughChunks(nil); len(got) != 0 {
		t.Errorf("expected no chunks for empty input, got %d", len(got))
	}
}
