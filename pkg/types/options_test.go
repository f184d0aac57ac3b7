package types

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLinkOptionsApply(t *testing.T) {
	query := sq.Select("id").From(TABLE_LINK.Name())
	ListLinkOptions{
		UserID:   "user-1",
		FolderID: "folder-1",
		IDs:      []string{"a", "b"},
	}.Apply(&query)

	sql, args, err := query.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "user_id =")
	assert.Contains(t, sql, "folder_id =")
	assert.Contains(t, sql, "id IN")
	assert.Len(t, args, 4)
}

func TestListLinkOptionsApplyEmpty(t *testing.T) {
	query := sq.Select("id").From(TABLE_LINK.Name())
	ListLinkOptions{}.Apply(&query)

	sql, args, err := query.ToSql()
	require.NoError(t, err)

	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestListTaskOptionsApply(t *testing.T) {
	query := sq.Select("id").From(TABLE_BACKGROUND_TASK.Name())
	ListTaskOptions{
		EntityID: "link-1",
		TaskType: TASK_TYPE_LINK_EMBEDDINGS,
		Status:   []TaskStatus{TASK_STATUS_PENDING, TASK_STATUS_PROCESSING},
	}.Apply(&query)

	sql, args, err := query.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "entity_id =")
	assert.Contains(t, sql, "task_type =")
	assert.Contains(t, sql, "status IN")
	assert.Len(t, args, 4)
}
