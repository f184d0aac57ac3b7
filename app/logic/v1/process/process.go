package process

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/linkvault-ai/linkvault/app/core"
	"github.com/linkvault-ai/linkvault/pkg/safe"
	"github.com/linkvault-ai/linkvault/pkg/types"
)

var p *Process

type Process struct {
	cron   *cron.Cron
	core   *core.Core
	ctx    context.Context
	cancel context.CancelFunc

	taskChan chan types.BackgroundTask
	trigger  chan struct{}

	mu         sync.Mutex
	processing map[string]struct{}
}

func NewProcess(core *core.Core) *Process {
	ctx, cancel := context.WithCancel(context.Background())
	p = &Process{
		cron:       cron.New(),
		core:       core,
		ctx:        ctx,
		cancel:     cancel,
		taskChan:   make(chan types.BackgroundTask, 1000),
		trigger:    make(chan struct{}, 1),
		processing: make(map[string]struct{}),
	}
	return p
}

// Trigger 唤醒一次任务扫描，入队后调用避免等待轮询间隔
func Trigger() {
	if p == nil || p.ctx.Err() != nil {
		return
	}
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

func (p *Process) Start() {
	cfg := p.core.Cfg().Enrich

	for i := 0; i < cfg.Concurrency; i++ {
		go safe.Run(func() {
			p.worker()
		})
	}

	go safe.Run(func() {
		for {
			select {
			case <-p.ctx.Done():
				return
			case <-p.trigger:
				p.Sweep()
			}
		}
	})

	p.cron.AddFunc(fmt.Sprintf("@every %ds", cfg.SweepIntervalSec), func() {
		safe.RunWithComponent(p.Sweep, "process.Sweep")
	})
	p.cron.Start()

	// 启动时先扫一轮，接上上次退出时遗留的任务
	p.Sweep()
}

func (p *Process) Stop() {
	if p.cron != nil {
		ctx := p.cron.Stop()
		<-ctx.Done()
	}
	p.cancel()
}

// staleProcessingAge processing 状态的留置窗口，超过视为持有方已崩溃
// 必须大于 taskDeadline，正常执行中的任务不能被拨回
const staleProcessingAge = 5 * time.Minute

// Sweep 捞取待处理任务投递给 worker，投递不动的留给下一轮
func (p *Process) Sweep() {
	ctx, cancel := context.WithTimeout(p.ctx, time.Second*10)
	defer cancel()

	stale := time.Now().Add(-staleProcessingAge).Unix()
	if n, err := p.core.Store().BackgroundTaskStore().RequeueStaleProcessing(ctx, stale); err != nil {
		slog.Error("Failed to requeue stale processing tasks", slog.String("error", err.Error()))
	} else if n > 0 {
		slog.Warn("Requeued stale processing tasks", slog.Int64("count", n))
	}

	list, err := p.core.Store().BackgroundTaskStore().ListPending(ctx, "", uint64(p.core.Cfg().Enrich.BatchSize))
	if err != nil && err != sql.ErrNoRows {
		slog.Error("Failed to list pending tasks", slog.String("error", err.Error()))
		return
	}

	if len(list) > 0 {
		slog.Debug("Process sweep", slog.Int("length", len(list)))
	}

	for _, task := range list {
		if p.isProcessing(taskKey(task)) {
			continue
		}
		select {
		case p.taskChan <- task:
		default:
			return
		}
	}
}

// Dispatch 将一批任务直接投递给 worker，绕过定时扫描
// 返回实际投递的数量，队列占满或任务已在处理中的被跳过
func Dispatch(tasks []types.BackgroundTask) int {
	if p == nil || p.ctx.Err() != nil {
		return 0
	}

	dispatched := 0
	for _, task := range tasks {
		if p.isProcessing(taskKey(task)) {
			continue
		}
		select {
		case p.taskChan <- task:
			dispatched++
		default:
			return dispatched
		}
	}
	return dispatched
}

func taskKey(task types.BackgroundTask) string {
	return task.EntityID + ":" + task.TaskType.String()
}

func (p *Process) isProcessing(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.processing[key]
	return ok
}

func (p *Process) markProcessing(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.processing[key]; ok {
		return false
	}
	p.processing[key] = struct{}{}
	return true
}

func (p *Process) unmarkProcessing(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.processing, key)
}

func (p *Process) worker() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case task := <-p.taskChan:
			key := taskKey(task)
			if !p.markProcessing(key) {
				continue
			}
			p.runTask(task)
			p.unmarkProcessing(key)
		}
	}
}

// claim 在事务里确认任务仍处于 pending 并占为己有
// 同身份任务重复入队时只有一个会走到这里，其余直接跳过
func (p *Process) claim(task types.BackgroundTask) (bool, error) {
	var claimed bool
	err := p.core.Store().Transaction(p.ctx, func(ctx context.Context) error {
		current, err := p.core.Store().BackgroundTaskStore().Get(ctx, task.ID)
		if err != nil {
			return err
		}
		if current.Status != types.TASK_STATUS_PENDING {
			return nil
		}
		if err = p.core.Store().BackgroundTaskStore().UpdateStatus(ctx, task.ID, types.TASK_STATUS_PROCESSING); err != nil {
			return err
		}
		claimed = true
		return nil
	})
	return claimed, err
}

func (p *Process) runTask(task types.BackgroundTask) {
	logAttrs := []any{
		slog.String("task_id", task.ID),
		slog.String("task_type", task.TaskType.String()),
		slog.String("entity_id", task.EntityID),
		slog.String("component", "Process.runTask"),
	}

	claimed, err := p.claim(task)
	if err != nil {
		slog.Error("Failed to claim task", append(logAttrs, slog.String("error", err.Error()))...)
		return
	}
	if !claimed {
		return
	}

	err = p.handle(task)
	if err == nil {
		if err = p.core.Store().BackgroundTaskStore().UpdateStatus(p.ctx, task.ID, types.TASK_STATUS_DONE); err != nil {
			slog.Error("Failed to mark task done", append(logAttrs, slog.String("error", err.Error()))...)
		}
		p.core.Metrics().EnrichTaskResultInc(task.TaskType.String(), "done")
		slog.Info("Task finished", logAttrs...)
		return
	}

	slog.Error("Task failed", append(logAttrs, slog.String("error", err.Error()), slog.Int("retry_count", task.RetryCount))...)

	retries := task.RetryCount + 1
	if serr := p.core.Store().BackgroundTaskStore().SetRetryCount(p.ctx, task.ID, retries); serr != nil {
		slog.Error("Failed to update task retry count", append(logAttrs, slog.String("error", serr.Error()))...)
	}

	if retries >= task.MaxRetries {
		p.core.Metrics().EnrichTaskResultInc(task.TaskType.String(), "failed")
		if serr := p.core.Store().BackgroundTaskStore().MarkFailed(p.ctx, task.ID, err.Error()); serr != nil {
			slog.Error("Failed to mark task failed", append(logAttrs, slog.String("error", serr.Error()))...)
		}
		return
	}

	// 回到 pending，由后续轮询重试
	p.core.Metrics().EnrichTaskResultInc(task.TaskType.String(), "retry")
	if serr := p.core.Store().BackgroundTaskStore().UpdateStatus(p.ctx, task.ID, types.TASK_STATUS_PENDING); serr != nil {
		slog.Error("Failed to requeue task", append(logAttrs, slog.String("error", serr.Error()))...)
	}
}
