package process

import (
	"math"
	"testing"

	"github.com/linkvault-ai/linkvault/pkg/extract"
	"github.com/linkvault-ai/linkvault/pkg/types"
)

func taskFixture(entityID string, taskType types.TaskType) types.BackgroundTask {
	return types.BackgroundTask{
		EntityID: entityID,
		TaskType: taskType,
	}
}

func TestMeanVector(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
	}

	got := meanVector(vectors)
	if len(got) != 3 {
		t.Fatalf("length = %d", len(got))
	}

	// mean is (0.5, 0.5, 0) which normalizes to (1/√2, 1/√2, 0)
	want := float32(1 / math.Sqrt2)
	if math.Abs(float64(got[0]-want)) > 1e-6 || math.Abs(float64(got[1]-want)) > 1e-6 {
		t.Errorf("got %v", got)
	}
	if got[2] != 0 {
		t.Errorf("expected zero third component, got %v", got[2])
	}
}

func TestMeanVectorEmpty(t *testing.T) {
	if got := meanVector(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestMeanVectorZero(t *testing.T) {
	got := meanVector([][]float32{{0, 0}, {0, 0}})
	for i, v := range got {
		if v != 0 {
			t.Errorf("component %d = %v, want 0", i, v)
		}
	}
}

func TestPageUnavailableGuardsPlaceholderWrite(t *testing.T) {
	// 抓取彻底失败时 extractor 仍会给出兜底元信息
	// 这份占位内容必须被拦在写库之前，否则会覆盖已富化的记录
	result := extract.NewExtractor().Extract("", "https://example.com/post")
	if result.Metadata.Description == "" {
		t.Fatal("expected a placeholder description for empty html")
	}

	if !pageUnavailable("") {
		t.Error("empty html must be treated as unavailable")
	}
	if !pageUnavailable("  \n\t") {
		t.Error("whitespace-only html must be treated as unavailable")
	}
	if pageUnavailable("<html><body>ok</body></html>") {
		t.Error("fetched html must not be treated as unavailable")
	}
}

func TestStaleWindowExceedsTaskDeadline(t *testing.T) {
	// 留置窗口必须大于单任务硬上限，否则正在执行的任务会被拨回重复处理
	if staleProcessingAge <= taskDeadline {
		t.Fatalf("stale window %v must exceed the task deadline %v", staleProcessingAge, taskDeadline)
	}
}

func TestTaskKey(t *testing.T) {
	a := taskKey(taskFixture("link-1", "link_metadata"))
	b := taskKey(taskFixture("link-1", "link_embeddings"))
	c := taskKey(taskFixture("link-2", "link_metadata"))

	if a == b || a == c {
		t.Errorf("task keys must distinguish entity and type: %q %q %q", a, b, c)
	}
	if a != taskKey(taskFixture("link-1", "link_metadata")) {
		t.Error("task key must be stable")
	}
}
