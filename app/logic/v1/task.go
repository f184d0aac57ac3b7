package v1

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/linkvault-ai/linkvault/app/core"
	"github.com/linkvault-ai/linkvault/app/logic/v1/process"
	"github.com/linkvault-ai/linkvault/pkg/errors"
	"github.com/linkvault-ai/linkvault/pkg/safe"
	"github.com/linkvault-ai/linkvault/pkg/types"
	"github.com/linkvault-ai/linkvault/pkg/utils"
)

type TaskLogic struct {
	UserInfo
	ctx  context.Context
	core *core.Core
}

func NewTaskLogic(ctx context.Context, core *core.Core) *TaskLogic {
	return &TaskLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx),
	}
}

// Enqueue 提交一个后台任务
// 任务身份是 (entity_id, task_type)，已有同身份的待处理/处理中任务时直接复用
func (l *TaskLogic) Enqueue(userID string, taskType types.TaskType, entityType types.EntityType, entityID string, payload any, priority int) (string, error) {
	existing, err := l.core.Store().BackgroundTaskStore().List(l.ctx, types.ListTaskOptions{
		EntityID: entityID,
		TaskType: taskType,
		Status:   []types.TaskStatus{types.TASK_STATUS_PENDING, types.TASK_STATUS_PROCESSING},
	}, 1, 1)
	if err != nil && err != sql.ErrNoRows {
		return "", errors.New("TaskLogic.Enqueue.BackgroundTaskStore.List", "failed to check existing tasks", err)
	}
	if len(existing) > 0 {
		return existing[0].ID, nil
	}

	raw := json.RawMessage("{}")
	if payload != nil {
		if raw, err = json.Marshal(payload); err != nil {
			return "", errors.New("TaskLogic.Enqueue.Marshal", "invalid task payload", err).Code(http.StatusBadRequest)
		}
	}

	task := types.BackgroundTask{
		ID:         utils.GenUniqIDStr(),
		UserID:     userID,
		TaskType:   taskType,
		EntityType: entityType,
		EntityID:   entityID,
		Payload:    raw,
		Status:     types.TASK_STATUS_PENDING,
		Priority:   priority,
		MaxRetries: types.DEFAULT_TASK_MAX_RETRIES,
	}
	if err = l.core.Store().BackgroundTaskStore().Create(l.ctx, task); err != nil {
		return "", errors.New("TaskLogic.Enqueue.BackgroundTaskStore.Create", "failed to create task", err)
	}

	// 入队立即唤醒 worker，不等下一轮轮询
	go safe.Run(process.Trigger)

	return task.ID, nil
}

const DEFAULT_WORKER_MAX_TASKS = 10

// ProcessPending 立即投递当前用户的待处理任务，不等下一轮扫描
// 返回实际投递给 worker 的数量
func (l *TaskLogic) ProcessPending(maxTasks int) (int, error) {
	if maxTasks <= 0 {
		maxTasks = DEFAULT_WORKER_MAX_TASKS
	}
	if maxTasks > 100 {
		maxTasks = 100
	}

	list, err := l.core.Store().BackgroundTaskStore().ListPending(l.ctx, l.GetUserID(), uint64(maxTasks))
	if err != nil && err != sql.ErrNoRows {
		return 0, errors.New("TaskLogic.ProcessPending.BackgroundTaskStore.ListPending", "failed to list pending tasks", err)
	}

	return process.Dispatch(list), nil
}

func (l *TaskLogic) GetTask(id string) (*types.BackgroundTask, error) {
	task, err := l.core.Store().BackgroundTaskStore().Get(l.ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("TaskLogic.GetTask", "task not found", err).Code(http.StatusNotFound)
		}
		return nil, errors.New("TaskLogic.GetTask.BackgroundTaskStore.Get", "failed to get task", err)
	}

	if task.UserID != l.GetUserID() {
		return nil, errors.New("TaskLogic.GetTask.auth.check", "permission denied", nil).Code(http.StatusForbidden)
	}
	return task, nil
}

func (l *TaskLogic) ListTasks(opts types.ListTaskOptions, page, pageSize uint64) ([]types.BackgroundTask, error) {
	opts.UserID = l.GetUserID()
	list, err := l.core.Store().BackgroundTaskStore().List(l.ctx, opts, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("TaskLogic.ListTasks.BackgroundTaskStore.List", "failed to list tasks", err)
	}
	return list, nil
}

// EnrichStatus 批量聚合一组链接的富化进度，三条集合查询拼装
func (l *TaskLogic) EnrichStatus(linkIDs []string) (map[string]types.EnrichStatus, error) {
	result := make(map[string]types.EnrichStatus, len(linkIDs))
	if len(linkIDs) == 0 {
		return result, nil
	}

	chunked, err := l.core.Store().LinkChunkStore().ListLinkIDsWithChunks(l.ctx, linkIDs)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("TaskLogic.EnrichStatus.ListLinkIDsWithChunks", "failed to query link chunks", err)
	}

	latest, err := l.core.Store().BackgroundTaskStore().ListLatestByEntities(l.ctx, linkIDs)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("TaskLogic.EnrichStatus.ListLatestByEntities", "failed to query task states", err)
	}

	failed, err := l.core.Store().BackgroundTaskStore().ListFailedEntities(l.ctx, linkIDs)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("TaskLogic.EnrichStatus.ListFailedEntities", "failed to query failed tasks", err)
	}

	chunkedSet := make(map[string]struct{}, len(chunked))
	for _, id := range chunked {
		chunkedSet[id] = struct{}{}
	}
	failedSet := make(map[string]struct{}, len(failed))
	for _, id := range failed {
		failedSet[id] = struct{}{}
	}
	latestByID := make(map[string]types.EntityTaskState, len(latest))
	for _, state := range latest {
		latestByID[state.EntityID] = state
	}

	for _, id := range linkIDs {
		_, hasChunks := chunkedSet[id]
		_, hasFailed := failedSet[id]
		state := latestByID[id]

		result[id] = types.EnrichStatus{
			HasChunks:    hasChunks,
			IsProcessing: state.Status == types.TASK_STATUS_PROCESSING,
			IsPending:    state.Status == types.TASK_STATUS_PENDING,
			// 已产出切片则不再对外暴露失败态
			HasFailed: hasFailed && !hasChunks,
		}
	}

	return result, nil
}
