package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pgvector/pgvector-go"

	"github.com/linkvault-ai/linkvault/pkg/register"
	"github.com/linkvault-ai/linkvault/pkg/types"
)

type NoteStoreImpl struct {
	CommonFields
}

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.NoteStore = NewNoteStore(provider)
	})
}

func NewNoteStore(provider SqlProviderAchieve) *NoteStoreImpl {
	repo := &NoteStoreImpl{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_NOTE)
	repo.SetAllColumns("id", "user_id", "title", "content", "folder_id", "tag_ids", "embedding", "created_at", "updated_at")
	return repo
}

func (s *NoteStoreImpl) Create(ctx context.Context, data types.Note) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = data.CreatedAt
	}
	if data.TagIDs == nil {
		data.TagIDs = []string{}
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "user_id", "title", "content", "folder_id", "tag_ids", "created_at", "updated_at").
		Values(data.ID, data.UserID, data.Title, data.Content, data.FolderID, data.TagIDs, data.CreatedAt, data.UpdatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *NoteStoreImpl) Get(ctx context.Context, userID, id string) (*types.Note, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id, "user_id": userID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Note
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *NoteStoreImpl) List(ctx context.Context, userID string, page, pageSize uint64) ([]types.Note, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"user_id": userID}).OrderBy("created_at DESC")
	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Note
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *NoteStoreImpl) Update(ctx context.Context, userID, id, title, content string) error {
	query := sq.Update(s.GetTable()).
		Set("title", title).
		Set("content", content).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id, "user_id": userID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *NoteStoreImpl) UpdateEmbedding(ctx context.Context, id string, embedding pgvector.Vector) error {
	query := sq.Update(s.GetTable()).
		Set("embedding", embedding).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *NoteStoreImpl) Delete(ctx context.Context, userID, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id, "user_id": userID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
