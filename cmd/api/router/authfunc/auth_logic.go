package authfunc

import (
	"context"
	"net/http"

	relation "VidTube.com/cmd/relation/service"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/jwt"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

func Auth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		TokenAuthFunc(),
		EnsureUserFunc(),
	)
}

// TokenAuthFunc 校验 Authorization: Bearer <token>, 通过后用户ID写入 constants.IdentityKey
func TokenAuthFunc() app.HandlerFunc {
	if jwt.JwtMiddleware == nil {
		return func(ctx context.Context, c *app.RequestContext) {
			utils.SendResponse(c, errno.TokenInvailedErr, nil)
			c.Abort()
		}
	}
	return jwt.JwtMiddleware.MiddlewareFunc()
}

// EnsureUserFunc token校验通过后确保users表中有该用户
func EnsureUserFunc() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		actor, err := jwt.ActorFrom(ctx, c)
		if err != nil {
			utils.SendResponse(c, err, nil)
			c.Abort()
			return
		}
		if err := relation.NewRelationService(ctx).EnsureUser(actor); err != nil {
			utils.SendResponse(c, err, nil)
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}

// Unauthorized 把jwt中间件的失败转换成统一的响应格式
func Unauthorized(ctx context.Context, c *app.RequestContext, code int, message string) {
	if code == http.StatusForbidden {
		utils.SendResponse(c, errno.ForbiddenErr, nil)
		return
	}
	utils.SendResponse(c, errno.TokenInvailedErr.WithMessage(message), nil)
}
