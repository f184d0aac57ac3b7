package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/linkvault-ai/linkvault/app/logic/v1"
	"github.com/linkvault-ai/linkvault/app/response"
	"github.com/linkvault-ai/linkvault/pkg/errors"
)

const USER_HEADER_KEY = "X-User-ID"

func Cors(c *gin.Context) {
	method := c.Request.Method
	origin := c.Request.Header.Get("Origin")
	if origin != "" {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, UPDATE")
		c.Header("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization, X-User-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length, Access-Control-Allow-Origin, Access-Control-Allow-Headers, Cache-Control, Content-Language, Content-Type")
		c.Header("Access-Control-Allow-Credentials", "true")
	}
	if method == "OPTIONS" {
		c.AbortWithStatus(http.StatusNoContent)
	}
	c.Next()
}

// Identity 个人部署场景下的轻量身份注入，请求方通过 Header 声明用户
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.Request.Header.Get(USER_HEADER_KEY)
		if user == "" {
			response.APIError(c, errors.New("middleware.Identity", "missing user identity", nil).Code(http.StatusUnauthorized))
			return
		}
		c.Set(v1.USER_KEY, user)
	}
}
