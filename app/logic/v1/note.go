package v1

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/lib/pq"

	"github.com/linkvault-ai/linkvault/app/core"
	"github.com/linkvault-ai/linkvault/pkg/errors"
	"github.com/linkvault-ai/linkvault/pkg/types"
	"github.com/linkvault-ai/linkvault/pkg/utils"
)

type NoteLogic struct {
	UserInfo
	ctx  context.Context
	core *core.Core
}

func NewNoteLogic(ctx context.Context, core *core.Core) *NoteLogic {
	return &NoteLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx),
	}
}

type CreateNoteArgs struct {
	Title    string
	Content  string
	FolderID string
	TagIDs   []string
}

// CreateNote 立刻落库返回，向量化交给后台任务
func (l *NoteLogic) CreateNote(args CreateNoteArgs) (string, error) {
	if args.Content == "" {
		return "", errors.InvalidInput("NoteLogic.CreateNote", "content is required", nil)
	}

	note := types.Note{
		ID:       utils.GenUniqIDStr(),
		UserID:   l.GetUserID(),
		Title:    args.Title,
		Content:  args.Content,
		FolderID: args.FolderID,
		TagIDs:   pq.StringArray(args.TagIDs),
	}
	if err := l.core.Store().NoteStore().Create(l.ctx, note); err != nil {
		return "", errors.New("NoteLogic.CreateNote.NoteStore.Create", "failed to create note", err)
	}

	if _, err := NewTaskLogic(l.ctx, l.core).Enqueue(l.GetUserID(), types.TASK_TYPE_NOTE_EMBEDDINGS, types.ENTITY_TYPE_NOTE, note.ID, nil, 0); err != nil {
		return "", errors.Trace("NoteLogic.CreateNote", err)
	}

	return note.ID, nil
}

func (l *NoteLogic) GetNote(id string) (*types.Note, error) {
	note, err := l.core.Store().NoteStore().Get(l.ctx, l.GetUserID(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("NoteLogic.GetNote", "note not found", err).Code(http.StatusNotFound)
		}
		return nil, errors.New("NoteLogic.GetNote.NoteStore.Get", "failed to get note", err)
	}
	return note, nil
}

func (l *NoteLogic) ListNotes(page, pageSize uint64) ([]types.Note, error) {
	list, err := l.core.Store().NoteStore().List(l.ctx, l.GetUserID(), page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("NoteLogic.ListNotes.NoteStore.List", "failed to list notes", err)
	}
	return list, nil
}

// UpdateNote 内容变化后重新入队向量化
func (l *NoteLogic) UpdateNote(id, title, content string) error {
	note, err := l.GetNote(id)
	if err != nil {
		return errors.Trace("NoteLogic.UpdateNote", err)
	}

	if err = l.core.Store().NoteStore().Update(l.ctx, l.GetUserID(), note.ID, title, content); err != nil {
		return errors.New("NoteLogic.UpdateNote.NoteStore.Update", "failed to update note", err)
	}

	if note.Content != content || note.Title != title {
		if _, err = NewTaskLogic(l.ctx, l.core).Enqueue(l.GetUserID(), types.TASK_TYPE_NOTE_EMBEDDINGS, types.ENTITY_TYPE_NOTE, note.ID, nil, 0); err != nil {
			return errors.Trace("NoteLogic.UpdateNote", err)
		}
	}
	return nil
}

func (l *NoteLogic) DeleteNote(id string) error {
	note, err := l.GetNote(id)
	if err != nil {
		return errors.Trace("NoteLogic.DeleteNote", err)
	}

	if err = l.core.Store().NoteStore().Delete(l.ctx, l.GetUserID(), note.ID); err != nil {
		return errors.New("NoteLogic.DeleteNote.NoteStore.Delete", "failed to delete note", err)
	}
	return nil
}
