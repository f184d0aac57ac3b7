package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pgvector/pgvector-go"

	"github.com/linkvault-ai/linkvault/pkg/register"
	"github.com/linkvault-ai/linkvault/pkg/types"
)

type LinkStoreImpl struct {
	CommonFields
}

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.LinkStore = NewLinkStore(provider)
	})
}

func NewLinkStore(provider SqlProviderAchieve) *LinkStoreImpl {
	repo := &LinkStoreImpl{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_LINK)
	repo.SetAllColumns(
		"id", "user_id", "url", "name", "description", "folder_id", "tag_ids", "favicon",
		"metadata", "embedding", "full_content", "content_type", "language", "word_count", "created_at", "updated_at",
	)
	return repo
}

func (s *LinkStoreImpl) Create(ctx context.Context, data types.Link) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = data.CreatedAt
	}
	if data.Metadata == nil {
		data.Metadata = []byte("{}")
	}
	if data.TagIDs == nil {
		data.TagIDs = []string{}
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "user_id", "url", "name", "description", "folder_id", "tag_ids", "favicon",
			"metadata", "full_content", "content_type", "language", "word_count", "created_at", "updated_at").
		Values(data.ID, data.UserID, data.URL, data.Name, data.Description, data.FolderID, data.TagIDs, data.Favicon,
			data.Metadata, data.FullContent, data.ContentType, data.Language, data.WordCount, data.CreatedAt, data.UpdatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *LinkStoreImpl) Get(ctx context.Context, userID, id string) (*types.Link, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id, "user_id": userID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Link
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *LinkStoreImpl) List(ctx context.Context, opts types.ListLinkOptions, page, pageSize uint64) ([]types.Link, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC")
	opts.Apply(&query)
	if page != types.NO_PAGINATION || pageSize != types.NO_PAGINATION {
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Link
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// UpdateEnrichment 富化结果写回，后写覆盖先写
func (s *LinkStoreImpl) UpdateEnrichment(ctx context.Context, id string, args types.UpdateLinkEnrichArgs) error {
	query := sq.Update(s.GetTable()).
		Set("favicon", args.Favicon).
		Set("full_content", args.FullContent).
		Set("content_type", args.ContentType).
		Set("language", args.Language).
		Set("word_count", args.WordCount).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"id": id})

	if args.Name != "" {
		query = query.Set("name", args.Name)
	}
	if args.Description != "" {
		query = query.Set("description", args.Description)
	}
	if len(args.Metadata) > 0 {
		query = query.Set("metadata", args.Metadata)
	}

	queryString, sqlArgs, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, sqlArgs...)
	return err
}

func (s *LinkStoreImpl) UpdateEmbedding(ctx context.Context, id string, embedding pgvector.Vector) error {
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

func (s *LinkStoreImpl) Delete(ctx context.Context, userID, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id, "user_id": userID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
