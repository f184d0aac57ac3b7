package v1

import (
	"context"
	"database/sql"
	"net/http"
	"net/url"
	"strings"

	"github.com/lib/pq"

	"github.com/linkvault-ai/linkvault/app/core"
	"github.com/linkvault-ai/linkvault/pkg/errors"
	"github.com/linkvault-ai/linkvault/pkg/fetch"
	"github.com/linkvault-ai/linkvault/pkg/types"
	"github.com/linkvault-ai/linkvault/pkg/utils"
)

type LinkLogic struct {
	UserInfo
	ctx  context.Context
	core *core.Core
}

func NewLinkLogic(ctx context.Context, core *core.Core) *LinkLogic {
	return &LinkLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx),
	}
}

type CreateLinkArgs struct {
	URL         string
	Name        string
	Description string
	FolderID    string
	TagIDs      []string
}

// CreateLink 立刻落库返回，富化交给后台任务
func (l *LinkLogic) CreateLink(args CreateLinkArgs) (string, error) {
	target, err := fetch.NormalizeURL(args.URL)
	if err != nil {
		return "", errors.Trace("LinkLogic.CreateLink", err)
	}

	name := args.Name
	if name == "" {
		if u, err := url.Parse(target); err == nil {
			name = strings.TrimPrefix(u.Host, "www.")
		} else {
			name = target
		}
	}

	link := types.Link{
		ID:          utils.GenUniqIDStr(),
		UserID:      l.GetUserID(),
		URL:         target,
		Name:        name,
		Description: args.Description,
		FolderID:    args.FolderID,
		TagIDs:      pq.StringArray(args.TagIDs),
	}
	if err = l.core.Store().LinkStore().Create(l.ctx, link); err != nil {
		return "", errors.New("LinkLogic.CreateLink.LinkStore.Create", "failed to create link", err)
	}

	taskLogic := NewTaskLogic(l.ctx, l.core)
	if _, err = taskLogic.Enqueue(l.GetUserID(), types.TASK_TYPE_LINK_METADATA, types.ENTITY_TYPE_LINK, link.ID, nil, 1); err != nil {
		return "", errors.Trace("LinkLogic.CreateLink", err)
	}
	if _, err = taskLogic.Enqueue(l.GetUserID(), types.TASK_TYPE_LINK_EMBEDDINGS, types.ENTITY_TYPE_LINK, link.ID, nil, 0); err != nil {
		return "", errors.Trace("LinkLogic.CreateLink", err)
	}

	return link.ID, nil
}

func (l *LinkLogic) GetLink(id string) (*types.Link, error) {
	link, err := l.core.Store().LinkStore().Get(l.ctx, l.GetUserID(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("LinkLogic.GetLink", "link not found", err).Code(http.StatusNotFound)
		}
		return nil, errors.New("LinkLogic.GetLink.LinkStore.Get", "failed to get link", err)
	}
	return link, nil
}

func (l *LinkLogic) ListLinks(folderID string, page, pageSize uint64) ([]types.Link, error) {
	list, err := l.core.Store().LinkStore().List(l.ctx, types.ListLinkOptions{
		UserID:   l.GetUserID(),
		FolderID: folderID,
	}, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("LinkLogic.ListLinks.LinkStore.List", "failed to list links", err)
	}
	return list, nil
}

// RefreshLink 重新抓取并富化已存在的链接
func (l *LinkLogic) RefreshLink(id string) (string, error) {
	link, err := l.GetLink(id)
	if err != nil {
		return "", errors.Trace("LinkLogic.RefreshLink", err)
	}

	taskID, err := NewTaskLogic(l.ctx, l.core).Enqueue(l.GetUserID(), types.TASK_TYPE_REFRESH_LINK, types.ENTITY_TYPE_LINK, link.ID, nil, 1)
	if err != nil {
		return "", errors.Trace("LinkLogic.RefreshLink", err)
	}
	return taskID, nil
}

// DeleteLink 连同切片一并删除
func (l *LinkLogic) DeleteLink(id string) error {
	link, err := l.GetLink(id)
	if err != nil {
		return errors.Trace("LinkLogic.DeleteLink", err)
	}

	return l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().LinkChunkStore().BatchDelete(ctx, link.ID); err != nil {
			return errors.New("LinkLogic.DeleteLink.LinkChunkStore.BatchDelete", "failed to delete link chunks", err)
		}
		if err := l.core.Store().LinkStore().Delete(ctx, l.GetUserID(), link.ID); err != nil {
			return errors.New("LinkLogic.DeleteLink.LinkStore.Delete", "failed to delete link", err)
		}
		return nil
	})
}
