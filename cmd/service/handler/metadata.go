package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/linkvault-ai/linkvault/app/logic/v1"
	"github.com/linkvault-ai/linkvault/app/response"
	"github.com/linkvault-ai/linkvault/pkg/utils"
)

type GetMetadataRequest struct {
	URL            string `json:"url" form:"url" binding:"required"`
	ExtractContent *bool  `json:"extract_content" form:"extract_content"`
}

func (s *HttpSrv) GetMetadata(c *gin.Context) {
	var req GetMetadataRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	// 不传 extract_content 默认带正文
	extractContent := req.ExtractContent == nil || *req.ExtractContent

	result, err := v1.NewMetadataLogic(c, s.Core).GetMetadata(req.URL, extractContent)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}
