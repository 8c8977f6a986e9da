package jwt

import (
	"context"
	"strconv"
	"testing"

	"VidTube.com/config"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	hconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *route.Engine {
	config.ConfigInfo.Jwt.Secret = "test-secret"
	config.ConfigInfo.Jwt.Timeout = "1h"
	require.NoError(t, Init(func(ctx context.Context, c *app.RequestContext, code int, message string) {
		c.String(code, message)
	}))

	r := route.NewEngine(hconfig.NewOptions([]hconfig.Option{}))
	r.GET("/me", JwtMiddleware.MiddlewareFunc(), func(ctx context.Context, c *app.RequestContext) {
		actor, err := ActorFrom(ctx, c)
		if err != nil {
			c.String(500, err.Error())
			return
		}
		c.String(200, strconv.FormatInt(actor, 10))
	})
	return r
}

func TestTokenRoundTrip(t *testing.T) {
	r := newEngine(t)
	userId := utils.GenerateID()
	token, _, err := GenerateToken(userId)
	require.NoError(t, err)

	w := ut.PerformRequest(r, "GET", "/me", nil, ut.Header{Key: "Authorization", Value: "Bearer " + token})
	resp := w.Result()
	assert.Equal(t, 200, resp.StatusCode())
	assert.Equal(t, strconv.FormatInt(userId, 10), string(resp.Body()), "大整数ID不能丢失精度")
}

func TestMissingOrBadToken(t *testing.T) {
	r := newEngine(t)

	w := ut.PerformRequest(r, "GET", "/me", nil)
	assert.Equal(t, 401, w.Result().StatusCode())

	w = ut.PerformRequest(r, "GET", "/me", nil, ut.Header{Key: "Authorization", Value: "Bearer not-a-token"})
	assert.Equal(t, 401, w.Result().StatusCode())
}

func TestActorFromWithoutMiddleware(t *testing.T) {
	c := app.NewContext(0)
	_, err := ActorFrom(context.Background(), c)
	assert.Error(t, err)
}
