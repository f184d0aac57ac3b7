package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/linkvault-ai/linkvault/app/logic/v1"
	"github.com/linkvault-ai/linkvault/app/response"
	"github.com/linkvault-ai/linkvault/pkg/types"
	"github.com/linkvault-ai/linkvault/pkg/utils"
)

type CreateNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content" binding:"required"`
	FolderID string   `json:"folder_id"`
	TagIDs   []string `json:"tag_ids"`
}

type CreateNoteResponse struct {
	ID string `json:"id"`
}

func (s *HttpSrv) CreateNote(c *gin.Context) {
	var req CreateNoteRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	id, err := v1.NewNoteLogic(c, s.Core).CreateNote(v1.CreateNoteArgs{
		Title:    req.Title,
		Content:  req.Content,
		FolderID: req.FolderID,
		TagIDs:   req.TagIDs,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, CreateNoteResponse{ID: id})
}

func (s *HttpSrv) GetNote(c *gin.Context) {
	id, _ := c.Params.Get("id")
	note, err := v1.NewNoteLogic(c, s.Core).GetNote(id)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, note)
}

type ListNotesRequest struct {
	Page     uint64 `json:"page" form:"page" binding:"required"`
	PageSize uint64 `json:"pagesize" form:"pagesize" binding:"required,lte=50"`
}

type ListNotesResponse struct {
	List []types.Note `json:"list"`
}

func (s *HttpSrv) ListNotes(c *gin.Context) {
	var req ListNotesRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	list, err := v1.NewNoteLogic(c, s.Core).ListNotes(req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ListNotesResponse{List: list})
}

type UpdateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
}

func (s *HttpSrv) UpdateNote(c *gin.Context) {
	var req UpdateNoteRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	id, _ := c.Params.Get("id")
	if err := v1.NewNoteLogic(c, s.Core).UpdateNote(id, req.Title, req.Content); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) DeleteNote(c *gin.Context) {
	id, _ := c.Params.Get("id")
	if err := v1.NewNoteLogic(c, s.Core).DeleteNote(id); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}
