package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/linkvault-ai/linkvault/app/logic/v1"
	"github.com/linkvault-ai/linkvault/app/response"
	"github.com/linkvault-ai/linkvault/pkg/types"
	"github.com/linkvault-ai/linkvault/pkg/utils"
)

type CreateLinkRequest struct {
	URL         string   `json:"url" binding:"required"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	FolderID    string   `json:"folder_id"`
	TagIDs      []string `json:"tag_ids"`
}

type CreateLinkResponse struct {
	ID string `json:"id"`
}

func (s *HttpSrv) CreateLink(c *gin.Context) {
	var req CreateLinkRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	id, err := v1.NewLinkLogic(c, s.Core).CreateLink(v1.CreateLinkArgs{
		URL:         req.URL,
		Name:        req.Name,
		Description: req.Description,
		FolderID:    req.FolderID,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, CreateLinkResponse{ID: id})
}

func (s *HttpSrv) GetLink(c *gin.Context) {
	id, _ := c.Params.Get("id")
	link, err := v1.NewLinkLogic(c, s.Core).GetLink(id)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, link)
}

type ListLinksRequest struct {
	FolderID string `json:"folder_id" form:"folder_id"`
	Page     uint64 `json:"page" form:"page" binding:"required"`
	PageSize uint64 `json:"pagesize" form:"pagesize" binding:"required,lte=50"`
}

type ListLinksResponse struct {
	List []types.Link `json:"list"`
}

func (s *HttpSrv) ListLinks(c *gin.Context) {
	var req ListLinksRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	list, err := v1.NewLinkLogic(c, s.Core).ListLinks(req.FolderID, req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ListLinksResponse{List: list})
}

type RefreshLinkResponse struct {
	TaskID string `json:"task_id"`
}

func (s *HttpSrv) RefreshLink(c *gin.Context) {
	id, _ := c.Params.Get("id")
	taskID, err := v1.NewLinkLogic(c, s.Core).RefreshLink(id)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, RefreshLinkResponse{TaskID: taskID})
}

func (s *HttpSrv) DeleteLink(c *gin.Context) {
	id, _ := c.Params.Get("id")
	if err := v1.NewLinkLogic(c, s.Core).DeleteLink(id); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

type LinkStatusRequest struct {
	LinkIDs []string `json:"link_ids" binding:"required"`
}

type LinkStatusResponse struct {
	Status map[string]types.EnrichStatus `json:"status"`
}

// LinkStatus UI 轮询入口，批量返回链接富化进度
func (s *HttpSrv) LinkStatus(c *gin.Context) {
	var req LinkStatusRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	status, err := v1.NewTaskLogic(c, s.Core).EnrichStatus(req.LinkIDs)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, LinkStatusResponse{Status: status})
}
