package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/linkvault-ai/linkvault/pkg/register"
	"github.com/linkvault-ai/linkvault/pkg/types"
)

type LinkChunkStoreImpl struct {
	CommonFields
}

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.LinkChunkStore = NewLinkChunkStore(provider)
	})
}

func NewLinkChunkStore(provider SqlProviderAchieve) *LinkChunkStoreImpl {
	repo := &LinkChunkStoreImpl{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_LINK_CHUNK)
	repo.SetAllColumns("id", "link_id", "user_id", "chunk_index", "chunk", "embedding", "model", "original_length", "created_at", "updated_at")
	return repo
}

func (s *LinkChunkStoreImpl) BatchCreate(ctx context.Context, chunks []types.LinkChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	now := time.Now().Unix()
	query := sq.Insert(s.GetTable()).
		Columns("id", "link_id", "user_id", "chunk_index", "chunk", "embedding", "model", "original_length", "created_at", "updated_at")
	for _, item := range chunks {
		query = query.Values(item.ID, item.LinkID, item.UserID, item.ChunkIndex, item.Chunk,
			item.Embedding, item.Model, item.OriginalLength, now, now)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *LinkChunkStoreImpl) BatchDelete(ctx context.Context, linkID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"link_id": linkID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *LinkChunkStoreImpl) List(ctx context.Context, linkID string) ([]types.LinkChunk, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"link_id": linkID}).OrderBy("chunk_index ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.LinkChunk
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *LinkChunkStoreImpl) ListLinkIDsWithChunks(ctx context.Context, linkIDs []string) ([]string, error) {
	if len(linkIDs) == 0 {
		return nil, nil
	}

	query := sq.Select("DISTINCT link_id").From(s.GetTable()).Where(sq.Eq{"link_id": linkIDs})

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
