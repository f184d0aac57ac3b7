package v1

import (
	"context"

	"github.com/gin-gonic/gin"
)

const USER_KEY = "user"

// UserInfo 请求上下文中的用户身份
type UserInfo struct {
	user string
}

func SetupUserInfo(ctx context.Context) UserInfo {
	if c, ok := ctx.(*gin.Context); ok {
		return UserInfo{user: c.GetString(USER_KEY)}
	}
	return UserInfo{}
}

func (u UserInfo) GetUserID() string {
	return u.user
}
