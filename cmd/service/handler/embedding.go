package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/linkvault-ai/linkvault/app/logic/v1"
	"github.com/linkvault-ai/linkvault/app/response"
	"github.com/linkvault-ai/linkvault/pkg/types"
	"github.com/linkvault-ai/linkvault/pkg/utils"
)

type GenerateEmbeddingsRequest struct {
	Texts     []string `json:"texts" binding:"required"`
	Chunk     *bool    `json:"chunk"`
	ChunkSize int      `json:"chunk_size"`
	Overlap   int      `json:"overlap"`
}

func (s *HttpSrv) GenerateEmbeddings(c *gin.Context) {
	var req GenerateEmbeddingsRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	// 不传 chunk 默认切片
	chunk := req.Chunk == nil || *req.Chunk

	result, err := v1.NewEmbeddingLogic(c, s.Core).GenerateEmbeddings(req.Texts, chunk, req.ChunkSize, req.Overlap)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}

type EmbedQueryRequest struct {
	Query string `json:"query" form:"query" binding:"required"`
}

func (s *HttpSrv) EmbedQuery(c *gin.Context) {
	var req EmbedQueryRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	result, err := v1.NewEmbeddingLogic(c, s.Core).EmbedQuery(req.Query)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}

type GetLinkEmbeddingsRequest struct {
	LinkID string `json:"link_id" form:"link_id" binding:"required"`
}

type GetLinkEmbeddingsResponse struct {
	List []types.LinkChunk `json:"list"`
}

func (s *HttpSrv) GetLinkEmbeddings(c *gin.Context) {
	var req GetLinkEmbeddingsRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	chunks, err := v1.NewEmbeddingLogic(c, s.Core).GetLinkEmbeddings(req.LinkID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, GetLinkEmbeddingsResponse{List: chunks})
}
