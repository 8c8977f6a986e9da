package jwt

import (
	"context"
	"strconv"
	"time"

	"VidTube.com/config"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/hertz-contrib/jwt"
)

var JwtMiddleware *jwt.HertzJWTMiddleware

// UnauthorizedFunc 由路由层提供, 用统一的响应格式返回401/403
type UnauthorizedFunc func(ctx context.Context, c *app.RequestContext, code int, message string)

// Init 只负责校验外部签发的token, 不提供登录接口
func Init(unauthorized UnauthorizedFunc) error {
	secret := config.ConfigInfo.Jwt.Secret
	if secret == "" {
		// 随机密钥下任何外部token都无法通过校验
		secret = uuid.NewString()
		hlog.Warn("jwt secret is empty, using a random key")
	}
	timeout, err := time.ParseDuration(config.ConfigInfo.Jwt.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 24 * time.Hour
	}
	realm := config.ConfigInfo.Jwt.Realm
	if realm == "" {
		realm = "vidtube"
	}

	mw, err := jwt.New(&jwt.HertzJWTMiddleware{
		Realm:         realm,
		Key:           []byte(secret),
		Timeout:       timeout,
		MaxRefresh:    timeout,
		IdentityKey:   constants.IdentityKey,
		TokenLookup:   "header: Authorization, query: token",
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
		// 雪花ID超过float64的精度, 写入claims时用字符串
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if id, ok := data.(int64); ok {
				return jwt.MapClaims{constants.IdentityKey: strconv.FormatInt(id, 10)}
			}
			return jwt.MapClaims{}
		},
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			return claims[constants.IdentityKey]
		},
		Authenticator: func(ctx context.Context, c *app.RequestContext) (interface{}, error) {
			return nil, jwt.ErrFailedAuthentication
		},
		Authorizator: func(data interface{}, ctx context.Context, c *app.RequestContext) bool {
			return utils.ValidHandle(utils.Transfer(data))
		},
		Unauthorized: unauthorized,
	})
	if err != nil {
		return err
	}
	JwtMiddleware = mw
	return nil
}

// GenerateToken 供运维脚本和测试使用
func GenerateToken(userId int64) (string, time.Time, error) {
	if JwtMiddleware == nil {
		return "", time.Time{}, errno.ServiceErr.WithMessage("jwt middleware is not initialized")
	}
	return JwtMiddleware.TokenGenerator(userId)
}

// ActorFrom 读取中间件写入的用户ID
func ActorFrom(ctx context.Context, c *app.RequestContext) (int64, error) {
	v, ok := c.Get(constants.IdentityKey)
	if !ok {
		return 0, errno.AuthorizationFailedErr
	}
	id := utils.Transfer(v)
	if !utils.ValidHandle(id) {
		return 0, errno.TokenInvailedErr
	}
	return id, nil
}
