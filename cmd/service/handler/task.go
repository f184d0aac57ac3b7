package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/linkvault-ai/linkvault/app/logic/v1"
	"github.com/linkvault-ai/linkvault/app/response"
	"github.com/linkvault-ai/linkvault/pkg/errors"
	"github.com/linkvault-ai/linkvault/pkg/types"
	"github.com/linkvault-ai/linkvault/pkg/utils"
)

type CreateTaskRequest struct {
	TaskType   string `json:"task_type" binding:"required"`
	EntityType string `json:"entity_type" binding:"required"`
	EntityID   string `json:"entity_id" binding:"required"`
	Priority   int    `json:"priority"`
}

type CreateTaskResponse struct {
	TaskID string `json:"task_id"`
}

func (s *HttpSrv) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	taskType := types.TaskType(req.TaskType)
	switch taskType {
	case types.TASK_TYPE_LINK_METADATA, types.TASK_TYPE_LINK_EMBEDDINGS,
		types.TASK_TYPE_REFRESH_LINK, types.TASK_TYPE_NOTE_EMBEDDINGS:
	default:
		response.APIError(c, errors.New("handler.CreateTask", "unknown task type", nil).Code(http.StatusBadRequest))
		return
	}

	logic := v1.NewTaskLogic(c, s.Core)
	taskID, err := logic.Enqueue(logic.GetUserID(), taskType, types.EntityType(req.EntityType), req.EntityID, nil, req.Priority)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, CreateTaskResponse{TaskID: taskID})
}

type TaskWorkerRequest struct {
	MaxTasks int `json:"max_tasks"`
}

type TaskWorkerResponse struct {
	Dispatched int `json:"dispatched"`
}

// TaskWorker 主动触发一轮当前用户的任务处理
func (s *HttpSrv) TaskWorker(c *gin.Context) {
	var req TaskWorkerRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	dispatched, err := v1.NewTaskLogic(c, s.Core).ProcessPending(req.MaxTasks)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, TaskWorkerResponse{Dispatched: dispatched})
}

func (s *HttpSrv) GetTask(c *gin.Context) {
	id, _ := c.Params.Get("id")
	task, err := v1.NewTaskLogic(c, s.Core).GetTask(id)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, task)
}

type ListTasksRequest struct {
	EntityID string `json:"entity_id" form:"entity_id"`
	TaskType string `json:"task_type" form:"task_type"`
	Status   string `json:"status" form:"status"`
	Page     uint64 `json:"page" form:"page" binding:"required"`
	PageSize uint64 `json:"pagesize" form:"pagesize" binding:"required,lte=50"`
}

type ListTasksResponse struct {
	List []types.BackgroundTask `json:"list"`
}

func (s *HttpSrv) ListTasks(c *gin.Context) {
	var req ListTasksRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	opts := types.ListTaskOptions{
		EntityID: req.EntityID,
		TaskType: types.TaskType(req.TaskType),
	}
	if req.Status != "" {
		opts.Status = []types.TaskStatus{types.TaskStatus(req.Status)}
	}

	list, err := v1.NewTaskLogic(c, s.Core).ListTasks(opts, req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ListTasksResponse{List: list})
}
