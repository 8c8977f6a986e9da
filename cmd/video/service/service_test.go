package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"VidTube.com/cmd/model"
	"VidTube.com/cmd/video/dal/db"
	"VidTube.com/pkg/database/dbtest"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/oss"
	"VidTube.com/pkg/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memStorage 记录上传和删除的对象, failUpload 中的文件上传会失败
type memStorage struct {
	mu          sync.Mutex
	objects     map[string]string
	failUpload  map[string]bool
	failDelete  bool
	uploadCount int
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string]string), failUpload: make(map[string]bool)}
}

func (m *memStorage) Upload(ctx context.Context, localFile string) (*oss.UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpload[localFile] {
		return nil, errors.New("minio unavailable")
	}
	m.uploadCount++
	id := fmt.Sprintf("bucket/%d%s", m.uploadCount, filepath.Ext(localFile))
	m.objects[id] = localFile
	return &oss.UploadResult{Url: "http://media.local/" + id, PublicId: id, Duration: 12.5}, nil
}

func (m *memStorage) Delete(ctx context.Context, publicId string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete {
		return false
	}
	if _, ok := m.objects[publicId]; !ok {
		return false
	}
	delete(m.objects, publicId)
	return true
}

func (m *memStorage) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

type fixture struct {
	DB      *gorm.DB
	storage *memStorage
	alice   int64
	bob     int64
}

func setup(t *testing.T) *fixture {
	f := &fixture{
		DB:      dbtest.New(t),
		storage: newMemStorage(),
		alice:   utils.GenerateID(),
		bob:     utils.GenerateID(),
	}
	db.Init(f.DB)
	Init(f.storage)
	require.NoError(t, f.DB.Create(&model.User{UserId: f.alice, UserName: "alice"}).Error)
	require.NoError(t, f.DB.Create(&model.User{UserId: f.bob, UserName: "bob"}).Error)
	return f
}

func (f *fixture) video(t *testing.T, owner int64, title string, views int64) *model.Video {
	v := &model.Video{VideoId: utils.GenerateID(), UserId: owner, Title: title, Views: views, IsPublished: true}
	require.NoError(t, f.DB.Create(v).Error)
	return v
}

func TestPlaylistMembership(t *testing.T) {
	f := setup(t)
	svc := NewPlaylistService(context.Background())
	v1 := f.video(t, f.bob, "v1", 0)
	v2 := f.video(t, f.bob, "v2", 0)

	playlist, err := svc.CreatePlaylist(f.alice, "  favourites ", "")
	require.NoError(t, err)
	assert.Equal(t, "favourites", playlist.Name)

	_, err = svc.AddVideo(playlist.PlaylistId, v1.VideoId, f.alice)
	require.NoError(t, err)
	_, err = svc.AddVideo(playlist.PlaylistId, v2.VideoId, f.alice)
	require.NoError(t, err)
	got, err := svc.AddVideo(playlist.PlaylistId, v1.VideoId, f.alice)
	require.NoError(t, err)
	assert.Equal(t, []int64{v1.VideoId, v2.VideoId, v1.VideoId}, got.Videos, "重复加入的视频保留多份")

	got, err = svc.RemoveVideo(playlist.PlaylistId, v1.VideoId, f.alice)
	require.NoError(t, err)
	assert.Equal(t, []int64{v2.VideoId}, got.Videos)

	// 不在列表中的视频删除时不报错
	got, err = svc.RemoveVideo(playlist.PlaylistId, v1.VideoId, f.alice)
	require.NoError(t, err)
	assert.Equal(t, []int64{v2.VideoId}, got.Videos)
}

func TestPlaylistRoundTrip(t *testing.T) {
	f := setup(t)
	svc := NewPlaylistService(context.Background())
	v := f.video(t, f.bob, "v", 0)
	playlist, err := svc.CreatePlaylist(f.alice, "later", "watch later")
	require.NoError(t, err)

	_, err = svc.AddVideo(playlist.PlaylistId, v.VideoId, f.alice)
	require.NoError(t, err)
	got, err := svc.RemoveVideo(playlist.PlaylistId, v.VideoId, f.alice)
	require.NoError(t, err)
	assert.Empty(t, got.Videos)
}

func TestPlaylistForbidden(t *testing.T) {
	f := setup(t)
	svc := NewPlaylistService(context.Background())
	v := f.video(t, f.alice, "v", 0)
	playlist, err := svc.CreatePlaylist(f.alice, "mine", "")
	require.NoError(t, err)

	_, err = svc.AddVideo(playlist.PlaylistId, v.VideoId, f.bob)
	assert.True(t, errors.Is(err, errno.ForbiddenErr))
	_, err = svc.RemoveVideo(playlist.PlaylistId, v.VideoId, f.bob)
	assert.True(t, errors.Is(err, errno.ForbiddenErr))
	_, err = svc.UpdatePlaylist(playlist.PlaylistId, f.bob, "stolen", "")
	assert.True(t, errors.Is(err, errno.ForbiddenErr))
	_, err = svc.DeletePlaylist(playlist.PlaylistId, f.bob)
	assert.True(t, errors.Is(err, errno.ForbiddenErr))

	got, err := svc.GetPlaylist(playlist.PlaylistId)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Name)
	assert.Empty(t, got.Videos, "越权操作不能修改列表")
}

func TestPlaylistErrors(t *testing.T) {
	f := setup(t)
	svc := NewPlaylistService(context.Background())
	playlist, err := svc.CreatePlaylist(f.alice, "mine", "")
	require.NoError(t, err)

	_, err = svc.CreatePlaylist(f.alice, "   ", "")
	assert.True(t, errors.Is(err, errno.ParamErr))
	_, err = svc.AddVideo(playlist.PlaylistId, utils.GenerateID(), f.alice)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
	_, err = svc.AddVideo(utils.GenerateID(), utils.GenerateID(), f.alice)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
	_, err = svc.AddVideo(0, 1, f.alice)
	assert.True(t, errors.Is(err, errno.ParamErr))

	updated, err := svc.UpdatePlaylist(playlist.PlaylistId, f.alice, "renamed", "desc")
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	list, err := svc.ListUserPlaylists(f.alice, utils.NewPageParam(1, 10))
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.DeletePlaylist(playlist.PlaylistId, f.alice)
	require.NoError(t, err)
	_, err = svc.GetPlaylist(playlist.PlaylistId)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
}

func TestPublishVideo(t *testing.T) {
	f := setup(t)
	svc := NewVideoService(context.Background())

	_, err := svc.PublishVideo(f.alice, &PublishParam{Title: " ", VideoFile: "a.mp4", ThumbnailFile: "a.jpg"})
	assert.True(t, errors.Is(err, errno.ParamErr))
	_, err = svc.PublishVideo(f.alice, &PublishParam{Title: "t", VideoFile: "a.mp4"})
	assert.True(t, errors.Is(err, errno.ParamErr))

	f.storage.failUpload["bad.jpg"] = true
	_, err = svc.PublishVideo(f.alice, &PublishParam{Title: "t", VideoFile: "a.mp4", ThumbnailFile: "bad.jpg"})
	assert.Equal(t, int64(errno.OssErrCode), errno.ConvertErr(err).ErrCode)
	assert.Zero(t, f.storage.size(), "封面上传失败时已上传的视频需要释放")

	video, err := svc.PublishVideo(f.alice, &PublishParam{Title: " My trip ", Description: "d", VideoFile: "a.mp4", ThumbnailFile: "a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "My trip", video.Title)
	assert.True(t, video.IsPublished)
	assert.InDelta(t, 12.5, video.Duration, 0.001)
	assert.Equal(t, 2, f.storage.size())

	got, err := svc.GetVideo(video.VideoId)
	require.NoError(t, err)
	assert.Equal(t, video.VideoUrl, got.VideoUrl)
}

func TestVideoOwnership(t *testing.T) {
	f := setup(t)
	svc := NewVideoService(context.Background())
	video, err := svc.PublishVideo(f.alice, &PublishParam{Title: "t", VideoFile: "a.mp4", ThumbnailFile: "a.jpg"})
	require.NoError(t, err)

	_, err = svc.UpdateVideo(video.VideoId, f.bob, &UpdateParam{Title: "hacked"})
	assert.True(t, errors.Is(err, errno.ForbiddenErr))
	_, err = svc.TogglePublishStatus(video.VideoId, f.bob)
	assert.True(t, errors.Is(err, errno.ForbiddenErr))
	_, err = svc.DeleteVideo(video.VideoId, f.bob)
	assert.True(t, errors.Is(err, errno.ForbiddenErr))

	got, err := svc.GetVideo(video.VideoId)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
	assert.True(t, got.IsPublished)
}

func TestUpdateVideo(t *testing.T) {
	f := setup(t)
	svc := NewVideoService(context.Background())
	video, err := svc.PublishVideo(f.alice, &PublishParam{Title: "t", VideoFile: "a.mp4", ThumbnailFile: "a.jpg"})
	require.NoError(t, err)
	oldCover := video.CoverPublicId

	_, err = svc.UpdateVideo(video.VideoId, f.alice, &UpdateParam{})
	assert.True(t, errors.Is(err, errno.ParamErr))

	updated, err := svc.UpdateVideo(video.VideoId, f.alice, &UpdateParam{Title: "new", ThumbnailFile: "b.png"})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.NotEqual(t, oldCover, updated.CoverPublicId)

	f.storage.mu.Lock()
	_, oldExists := f.storage.objects[oldCover]
	_, newExists := f.storage.objects[updated.CoverPublicId]
	f.storage.mu.Unlock()
	assert.False(t, oldExists, "旧封面应该被删除")
	assert.True(t, newExists)
}

func TestTogglePublishStatus(t *testing.T) {
	f := setup(t)
	svc := NewVideoService(context.Background())
	video := f.video(t, f.alice, "t", 0)

	got, err := svc.TogglePublishStatus(video.VideoId, f.alice)
	require.NoError(t, err)
	assert.False(t, got.IsPublished)
	stored, err := svc.GetVideo(video.VideoId)
	require.NoError(t, err)
	assert.False(t, stored.IsPublished, "返回值必须与落库的状态一致")

	got, err = svc.TogglePublishStatus(video.VideoId, f.alice)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)

	stored, err = svc.GetVideo(video.VideoId)
	require.NoError(t, err)
	assert.True(t, stored.IsPublished)
}

type invalidRecorder struct {
	mu   sync.Mutex
	keys []string
}

func (r *invalidRecorder) Invalidate(ctx context.Context, kind string, targetId int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, fmt.Sprintf("%s:%d", kind, targetId))
	return nil
}

func TestDeleteVideo(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	svc := NewVideoService(ctx)
	invalid := &invalidRecorder{}
	InitLikeCache(invalid)
	t.Cleanup(func() { InitLikeCache(nil) })
	video, err := svc.PublishVideo(f.alice, &PublishParam{Title: "t", VideoFile: "a.mp4", ThumbnailFile: "a.jpg"})
	require.NoError(t, err)

	playlist, err := NewPlaylistService(ctx).CreatePlaylist(f.bob, "p", "")
	require.NoError(t, err)
	_, err = NewPlaylistService(ctx).AddVideo(playlist.PlaylistId, video.VideoId, f.bob)
	require.NoError(t, err)
	require.NoError(t, f.DB.Create(&model.Like{LikeId: utils.GenerateID(), UserId: f.bob, TargetType: "video", TargetId: video.VideoId}).Error)
	comment := &model.Comment{CommentId: utils.GenerateID(), VideoId: video.VideoId, UserId: f.bob, Content: "c"}
	require.NoError(t, f.DB.Create(comment).Error)
	require.NoError(t, f.DB.Create(&model.Like{LikeId: utils.GenerateID(), UserId: f.alice, TargetType: "comment", TargetId: comment.CommentId}).Error)

	result, err := svc.DeleteVideo(video.VideoId, f.alice)
	require.NoError(t, err)
	assert.True(t, result.MediaReleased)
	assert.Zero(t, f.storage.size())
	assert.ElementsMatch(t, []string{
		fmt.Sprintf("video:%d", video.VideoId),
		fmt.Sprintf("comment:%d", comment.CommentId),
	}, invalid.keys, "视频和评论的点赞数缓存都要清理")

	_, err = svc.GetVideo(video.VideoId)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
	var likes, comments int64
	require.NoError(t, f.DB.Model(&model.Like{}).Count(&likes).Error)
	require.NoError(t, f.DB.Model(&model.Comment{}).Count(&comments).Error)
	assert.Zero(t, likes)
	assert.Zero(t, comments)
	got, err := NewPlaylistService(ctx).GetPlaylist(playlist.PlaylistId)
	require.NoError(t, err)
	assert.Empty(t, got.Videos)

	t.Run("media release failure is reported", func(t *testing.T) {
		video, err := svc.PublishVideo(f.alice, &PublishParam{Title: "t2", VideoFile: "b.mp4", ThumbnailFile: "b.jpg"})
		require.NoError(t, err)
		f.storage.failDelete = true
		result, err := svc.DeleteVideo(video.VideoId, f.alice)
		require.NoError(t, err)
		assert.False(t, result.MediaReleased)
		_, err = svc.GetVideo(video.VideoId)
		assert.True(t, errors.Is(err, errno.NotFoundErr))
	})
}

func TestListVideos(t *testing.T) {
	f := setup(t)
	svc := NewVideoService(context.Background())
	ids := make([]int64, 0, 12)
	for i := 1; i <= 12; i++ {
		v := f.video(t, f.alice, fmt.Sprintf("clip %02d", i), int64(i*10))
		ids = append(ids, v.VideoId)
	}
	f.video(t, f.bob, "cooking show", 1000)

	page, total, err := svc.ListVideos(db.VideoQuery{UserId: f.alice}, utils.NewPageParam(2, 5))
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, page, 5)
	for i, v := range page {
		assert.Equal(t, ids[5+i], v.VideoId)
	}

	top, _, err := svc.ListVideos(db.VideoQuery{SortBy: "views", SortType: "desc"}, utils.NewPageParam(1, 1))
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "cooking show", top[0].Title)

	found, total, err := svc.ListVideos(db.VideoQuery{Keyword: "cook"}, utils.NewPageParam(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, found, 1)

	_, _, err = svc.ListVideos(db.VideoQuery{SortBy: "views; DROP TABLE videos"}, utils.NewPageParam(1, 10))
	assert.True(t, errors.Is(err, errno.ParamErr))
	_, _, err = svc.ListVideos(db.VideoQuery{SortType: "sideways"}, utils.NewPageParam(1, 10))
	assert.True(t, errors.Is(err, errno.ParamErr))
}

func TestChannelStats(t *testing.T) {
	f := setup(t)
	svc := NewChannelService(context.Background())
	v1 := f.video(t, f.alice, "a", 10)
	v2 := f.video(t, f.alice, "b", 5)
	other := f.video(t, f.bob, "c", 99)

	carol := utils.GenerateID()
	require.NoError(t, f.DB.Create(&model.User{UserId: carol, UserName: "carol"}).Error)
	for _, u := range []int64{f.bob, carol} {
		require.NoError(t, f.DB.Create(&model.Subscription{SubscriptionId: utils.GenerateID(), SubscriberId: u, ChannelId: f.alice}).Error)
	}
	likes := []model.Like{
		{LikeId: utils.GenerateID(), UserId: f.bob, TargetType: "video", TargetId: v1.VideoId},
		{LikeId: utils.GenerateID(), UserId: carol, TargetType: "video", TargetId: v1.VideoId},
		{LikeId: utils.GenerateID(), UserId: f.bob, TargetType: "video", TargetId: v2.VideoId},
		{LikeId: utils.GenerateID(), UserId: f.alice, TargetType: "video", TargetId: other.VideoId},
		{LikeId: utils.GenerateID(), UserId: f.bob, TargetType: "tweet", TargetId: v1.VideoId},
	}
	require.NoError(t, f.DB.Create(&likes).Error)

	stats, err := svc.GetChannelStats(f.alice)
	require.NoError(t, err)
	assert.Equal(t, model.ChannelStats{TotalViews: 15, TotalSubscribers: 2, TotalLikes: 3, TotalVideos: 2}, *stats)

	empty, err := svc.GetChannelStats(carol)
	require.NoError(t, err)
	assert.Equal(t, model.ChannelStats{}, *empty)

	_, err = svc.GetChannelStats(utils.GenerateID())
	assert.True(t, errors.Is(err, errno.NotFoundErr))

	videos, err := svc.GetChannelVideos(f.alice, utils.NewPageParam(1, 10))
	require.NoError(t, err)
	assert.Len(t, videos, 2)
}
