package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/linkvault-ai/linkvault/pkg/register"
	"github.com/linkvault-ai/linkvault/pkg/types"
)

type BackgroundTaskStoreImpl struct {
	CommonFields
}

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.BackgroundTaskStore = NewBackgroundTaskStore(provider)
	})
}

func NewBackgroundTaskStore(provider SqlProviderAchieve) *BackgroundTaskStoreImpl {
	repo := &BackgroundTaskStoreImpl{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_BACKGROUND_TASK)
	repo.SetAllColumns("id", "user_id", "task_type", "entity_type", "entity_id", "payload",
		"status", "error_message", "priority", "retry_count", "max_retries", "created_at", "updated_at")
	return repo
}

func (s *BackgroundTaskStoreImpl) Create(ctx context.Context, data types.BackgroundTask) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = data.CreatedAt
	}
	if data.Status == "" {
		data.Status = types.TASK_STATUS_PENDING
	}
	if data.MaxRetries == 0 {
		data.MaxRetries = types.DEFAULT_TASK_MAX_RETRIES
	}
	if data.Payload == nil {
		data.Payload = []byte("{}")
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "user_id", "task_type", "entity_type", "entity_id", "payload",
			"status", "error_message", "priority", "retry_count", "max_retries", "created_at", "updated_at").
		Values(data.ID, data.UserID, data.TaskType, data.EntityType, data.EntityID, data.Payload,
			data.Status, data.ErrorMessage, data.Priority, data.RetryCount, data.MaxRetries, data.CreatedAt, data.UpdatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *BackgroundTaskStoreImpl) Get(ctx context.Context, id string) (*types.BackgroundTask, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.BackgroundTask
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *BackgroundTaskStoreImpl) List(ctx context.Context, opts types.ListTaskOptions, page, pageSize uint64) ([]types.BackgroundTask, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC")
	opts.Apply(&query)
	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.BackgroundTask
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// ListPending 按优先级和入队顺序取待处理任务
func (s *BackgroundTaskStoreImpl) ListPending(ctx context.Context, userID string, limit uint64) ([]types.BackgroundTask, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"status": types.TASK_STATUS_PENDING}).
		OrderBy("priority DESC", "created_at ASC").
		Limit(limit)
	if userID != "" {
		query = query.Where(sq.Eq{"user_id": userID})
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.BackgroundTask
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *BackgroundTaskStoreImpl) UpdateStatus(ctx context.Context, id string, status types.TaskStatus) error {
	query := sq.Update(s.GetTable()).
		Set("status", status).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *BackgroundTaskStoreImpl) MarkFailed(ctx context.Context, id, errorMessage string) error {
	query := sq.Update(s.GetTable()).
		Set("status", types.TASK_STATUS_FAILED).
		Set("error_message", errorMessage).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// RequeueStaleProcessing 把 processing 状态下长时间没有更新的任务拨回 pending
// worker 崩溃后遗留的占用只能靠这里回收，否则该 (entity, task_type) 永远卡死
func (s *BackgroundTaskStoreImpl) RequeueStaleProcessing(ctx context.Context, before int64) (int64, error) {
	query := sq.Update(s.GetTable()).
		Set("status", types.TASK_STATUS_PENDING).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"status": types.TASK_STATUS_PROCESSING}).
		Where(sq.Lt{"updated_at": before})

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	res, err := s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *BackgroundTaskStoreImpl) SetRetryCount(ctx context.Context, id string, retryCount int) error {
	query := sq.Update(s.GetTable()).
		Set("retry_count", retryCount).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// ListLatestByEntities 每个实体只取最近一条任务的状态
func (s *BackgroundTaskStoreImpl) ListLatestByEntities(ctx context.Context, entityIDs []string) ([]types.EntityTaskState, error) {
	if len(entityIDs) == 0 {
		return nil, nil
	}

	query := sq.Select("DISTINCT ON (entity_id) entity_id", "status", "created_at").
		From(s.GetTable()).
		Where(sq.Eq{"entity_id": entityIDs}).
		OrderBy("entity_id", "created_at DESC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.EntityTaskState
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *BackgroundTaskStoreImpl) ListFailedEntities(ctx context.Context, entityIDs []string) ([]string, error) {
	if len(entityIDs) == 0 {
		return nil, nil
	}

	query := sq.Select("DISTINCT entity_id").From(s.GetTable()).
		Where(sq.Eq{"entity_id": entityIDs, "status": types.TASK_STATUS_FAILED})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []string
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}
