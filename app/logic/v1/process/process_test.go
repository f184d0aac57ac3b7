package process

import (
	"context"
	"testing"

	"github.com/linkvault-ai/linkvault/pkg/types"
)

func TestDispatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p = &Process{
		ctx:        ctx,
		taskChan:   make(chan types.BackgroundTask, 2),
		processing: map[string]struct{}{},
	}
	defer func() { p = nil }()

	tasks := []types.BackgroundTask{
		{ID: "t1", EntityID: "link-1", TaskType: types.TASK_TYPE_LINK_METADATA},
		{ID: "t2", EntityID: "link-2", TaskType: types.TASK_TYPE_LINK_EMBEDDINGS},
		{ID: "t3", EntityID: "link-3", TaskType: types.TASK_TYPE_LINK_EMBEDDINGS},
	}

	// 第一个任务已在处理中，不能重复投递
	p.processing[taskKey(tasks[0])] = struct{}{}

	if got := Dispatch(tasks); got != 2 {
		t.Errorf("dispatched = %d, want 2", got)
	}
	if len(p.taskChan) != 2 {
		t.Errorf("channel holds %d tasks, want 2", len(p.taskChan))
	}
}

func TestDispatchStopsWhenChannelFull(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p = &Process{
		ctx:        ctx,
		taskChan:   make(chan types.BackgroundTask, 1),
		processing: map[string]struct{}{},
	}
	defer func() { p = nil }()

	tasks := []types.BackgroundTask{
		{ID: "t1", EntityID: "link-1", TaskType: types.TASK_TYPE_LINK_METADATA},
		{ID: "t2", EntityID: "link-2", TaskType: types.TASK_TYPE_LINK_METADATA},
	}

	if got := Dispatch(tasks); got != 1 {
		t.Errorf("dispatched = %d, want 1", got)
	}
}

func TestDispatchWithoutProcess(t *testing.T) {
	p = nil
	if got := Dispatch([]types.BackgroundTask{{ID: "t1"}}); got != 0 {
		t.Errorf("dispatched = %d, want 0 when no worker is running", got)
	}
}
