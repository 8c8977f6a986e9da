package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"testing"

	"VidTube.com/cmd/api/router/authfunc"
	interactiondb "VidTube.com/cmd/interaction/dal/db"
	interaction "VidTube.com/cmd/interaction/service"
	"VidTube.com/cmd/model"
	relationdb "VidTube.com/cmd/relation/dal/db"
	relation "VidTube.com/cmd/relation/service"
	videodb "VidTube.com/cmd/video/dal/db"
	video "VidTube.com/cmd/video/service"
	"VidTube.com/config"
	"VidTube.com/pkg/database/dbtest"
	"VidTube.com/pkg/jwt"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Status  int64           `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type apiTest struct {
	t     *testing.T
	h     *server.Hertz
	DB    *gorm.DB
	alice int64
	bob   int64
}

func setup(t *testing.T) *apiTest {
	gdb := dbtest.New(t)
	interactiondb.Init(gdb)
	relationdb.Init(gdb)
	videodb.Init(gdb)
	interaction.Init(interaction.Components{})
	relation.Init(nil, nil)
	video.Init(nil)

	config.ConfigInfo.Jwt.Secret = "router-test-secret"
	config.ConfigInfo.Jwt.Timeout = "1h"
	require.NoError(t, jwt.Init(authfunc.Unauthorized))

	h := server.New()
	Register(h)

	a := &apiTest{t: t, h: h, DB: gdb, alice: utils.GenerateID(), bob: utils.GenerateID()}
	require.NoError(t, gdb.Create(&model.User{UserId: a.alice, UserName: "alice"}).Error)
	require.NoError(t, gdb.Create(&model.User{UserId: a.bob, UserName: "bob"}).Error)
	return a
}

func (a *apiTest) token(userId int64) string {
	token, _, err := jwt.GenerateToken(userId)
	require.NoError(a.t, err)
	return token
}

// do 发送请求并检查HTTP状态码与响应体中的status一致
func (a *apiTest) do(method, path string, actor int64, body interface{}) *envelope {
	headers := []ut.Header{{Key: "Content-Type", Value: "application/json"}}
	if actor != 0 {
		headers = append(headers, ut.Header{Key: "Authorization", Value: "Bearer " + a.token(actor)})
	}
	var reqBody *ut.Body
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reqBody = &ut.Body{Body: bytes.NewReader(raw), Len: len(raw)}
	}
	w := ut.PerformRequest(a.h.Engine, method, path, reqBody, headers...)
	resp := w.Result()

	var env envelope
	require.NoError(a.t, json.Unmarshal(resp.Body(), &env), string(resp.Body()))
	assert.Equal(a.t, int64(resp.StatusCode()), env.Status)
	return &env
}

func (a *apiTest) video(owner int64) *model.Video {
	v := &model.Video{VideoId: utils.GenerateID(), UserId: owner, Title: "clip", IsPublished: true}
	require.NoError(a.t, a.DB.Create(v).Error)
	return v
}

func TestPing(t *testing.T) {
	a := setup(t)
	env := a.do("GET", "/ping", 0, nil)
	assert.Equal(t, int64(200), env.Status)
}

func TestAuthRequired(t *testing.T) {
	a := setup(t)
	v := a.video(a.bob)
	env := a.do("POST", fmt.Sprintf("/api/v1/likes/video/%d", v.VideoId), 0, nil)
	assert.Equal(t, int64(401), env.Status)

	// 公开接口不需要token
	env = a.do("GET", fmt.Sprintf("/api/v1/videos/%d", v.VideoId), 0, nil)
	assert.Equal(t, int64(200), env.Status)
}

func TestLikeToggleOverHTTP(t *testing.T) {
	a := setup(t)
	v := a.video(a.bob)
	likePath := fmt.Sprintf("/api/v1/likes/video/%d", v.VideoId)
	countPath := likePath + "/count"

	var toggled struct {
		Action  string `json:"action"`
		IsLiked bool   `json:"is_liked"`
	}
	var count struct {
		Count int64 `json:"count"`
	}

	env := a.do("POST", likePath, a.alice, nil)
	require.Equal(t, int64(200), env.Status, env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &toggled))
	assert.Equal(t, "added", toggled.Action)
	assert.True(t, toggled.IsLiked)

	env = a.do("GET", countPath, 0, nil)
	require.NoError(t, json.Unmarshal(env.Data, &count))
	assert.Equal(t, int64(1), count.Count)

	env = a.do("POST", likePath, a.alice, nil)
	require.NoError(t, json.Unmarshal(env.Data, &toggled))
	assert.Equal(t, "removed", toggled.Action)
	assert.False(t, toggled.IsLiked)

	env = a.do("GET", countPath, 0, nil)
	require.NoError(t, json.Unmarshal(env.Data, &count))
	assert.Zero(t, count.Count)

	env = a.do("POST", fmt.Sprintf("/api/v1/likes/playlist/%d", v.VideoId), a.alice, nil)
	assert.Equal(t, int64(400), env.Status)
	env = a.do("POST", fmt.Sprintf("/api/v1/likes/video/%d", utils.GenerateID()), a.alice, nil)
	assert.Equal(t, int64(404), env.Status)
}

func TestCommentOwnershipOverHTTP(t *testing.T) {
	a := setup(t)
	v := a.video(a.bob)

	env := a.do("POST", fmt.Sprintf("/api/v1/videos/%d/comments", v.VideoId), a.alice, map[string]string{"content": "nice"})
	require.Equal(t, int64(200), env.Status, env.Message)
	var comment model.Comment
	require.NoError(t, json.Unmarshal(env.Data, &comment))
	assert.Equal(t, a.alice, comment.UserId)

	path := fmt.Sprintf("/api/v1/comments/%d", comment.CommentId)
	env = a.do("PATCH", path, a.bob, map[string]string{"content": "mine now"})
	assert.Equal(t, int64(403), env.Status)
	env = a.do("DELETE", path, a.bob, nil)
	assert.Equal(t, int64(403), env.Status)
	env = a.do("PATCH", path, a.alice, map[string]string{"content": "   "})
	assert.Equal(t, int64(400), env.Status)

	env = a.do("GET", fmt.Sprintf("/api/v1/videos/%d/comments", v.VideoId), 0, nil)
	var comments []model.Comment
	require.NoError(t, json.Unmarshal(env.Data, &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "nice", comments[0].Content)

	env = a.do("GET", fmt.Sprintf("/api/v1/videos/%d/comments/count", v.VideoId), 0, nil)
	require.Equal(t, int64(200), env.Status, env.Message)
	var counted struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &counted))
	assert.Equal(t, int64(1), counted.Count)
}

func TestInvalidHandle(t *testing.T) {
	a := setup(t)
	env := a.do("GET", "/api/v1/videos/abc", 0, nil)
	assert.Equal(t, int64(400), env.Status)
	env = a.do("GET", "/api/v1/playlists/-3", 0, nil)
	assert.Equal(t, int64(400), env.Status)
}

func TestPlaylistForbiddenOverHTTP(t *testing.T) {
	a := setup(t)
	v := a.video(a.alice)

	env := a.do("POST", "/api/v1/playlists", a.alice, map[string]string{"name": "mine"})
	require.Equal(t, int64(200), env.Status, env.Message)
	var playlist model.Playlist
	require.NoError(t, json.Unmarshal(env.Data, &playlist))

	path := fmt.Sprintf("/api/v1/playlists/%d/videos/%d", playlist.PlaylistId, v.VideoId)
	env = a.do("POST", path, a.bob, nil)
	assert.Equal(t, int64(403), env.Status)

	env = a.do("POST", path, a.alice, nil)
	require.Equal(t, int64(200), env.Status, env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &playlist))
	assert.Equal(t, []int64{v.VideoId}, playlist.Videos)
}

func TestSubscriptionOverHTTP(t *testing.T) {
	a := setup(t)
	env := a.do("POST", fmt.Sprintf("/api/v1/subscriptions/%d", a.alice), a.alice, nil)
	assert.Equal(t, int64(400), env.Status, "不能订阅自己")

	env = a.do("POST", fmt.Sprintf("/api/v1/subscriptions/%d", a.alice), a.bob, nil)
	require.Equal(t, int64(200), env.Status, env.Message)

	env = a.do("GET", fmt.Sprintf("/api/v1/subscriptions/%d/subscribers", a.alice), 0, nil)
	var users []model.User
	require.NoError(t, json.Unmarshal(env.Data, &users))
	require.Len(t, users, 1)
	assert.Equal(t, a.bob, users[0].UserId)

	env = a.do("GET", fmt.Sprintf("/api/v1/subscriptions/%d/count", a.alice), 0, nil)
	require.Equal(t, int64(200), env.Status, env.Message)
	var counted struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &counted))
	assert.Equal(t, int64(1), counted.Count)

	env = a.do("GET", "/api/v1/channel/stats", a.alice, nil)
	var stats model.ChannelStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(1), stats.TotalSubscribers)
}

func TestFirstRequestProvisionsChannel(t *testing.T) {
	a := setup(t)
	carol := utils.GenerateID()
	a.video(carol)

	// carol在users表中还没有记录, 此时不能被订阅
	env := a.do("POST", fmt.Sprintf("/api/v1/subscriptions/%d", carol), a.bob, nil)
	assert.Equal(t, int64(404), env.Status)

	env = a.do("GET", "/api/v1/channel/stats", carol, nil)
	require.Equal(t, int64(200), env.Status, env.Message)
	var stats model.ChannelStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(1), stats.TotalVideos)

	env = a.do("POST", fmt.Sprintf("/api/v1/subscriptions/%d", carol), a.bob, nil)
	require.Equal(t, int64(200), env.Status, env.Message)

	var count int64
	require.NoError(t, a.DB.Model(&model.User{}).Where("user_id = ?", carol).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTweetPagination(t *testing.T) {
	a := setup(t)
	ids := make([]int64, 0, 12)
	for i := 1; i <= 12; i++ {
		env := a.do("POST", "/api/v1/tweets", a.alice, map[string]string{"content": "tweet " + strconv.Itoa(i)})
		require.Equal(t, int64(200), env.Status, env.Message)
		var tweet model.Tweet
		require.NoError(t, json.Unmarshal(env.Data, &tweet))
		ids = append(ids, tweet.TweetId)
	}

	env := a.do("GET", fmt.Sprintf("/api/v1/tweets/user/%d?page=2&limit=5", a.alice), 0, nil)
	var tweets []model.Tweet
	require.NoError(t, json.Unmarshal(env.Data, &tweets))
	require.Len(t, tweets, 5)
	for i, tw := range tweets {
		assert.Equal(t, ids[5+i], tw.TweetId)
	}
}

func TestPublishWithoutStorage(t *testing.T) {
	a := setup(t)
	env := a.do("POST", "/api/v1/videos", a.alice, map[string]string{"title": "t"})
	assert.Equal(t, int64(400), env.Status, "缺少文件")
}
