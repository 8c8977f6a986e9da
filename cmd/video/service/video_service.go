package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"VidTube.com/cmd/model"
	"VidTube.com/cmd/video/dal/db"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/guard"
	"VidTube.com/pkg/oss"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type VideoService struct {
	ctx context.Context
}

func NewVideoService(ctx context.Context) *VideoService {
	return &VideoService{ctx: ctx}
}

// PublishParam VideoFile 和 ThumbnailFile 是已经落盘的本地临时文件
type PublishParam struct {
	Title         string
	Description   string
	VideoFile     string
	ThumbnailFile string
}

// UpdateParam 为空的字段保持不变
type UpdateParam struct {
	Title         string
	Description   string
	ThumbnailFile string
}

// DeleteResult MediaReleased 为false时表示存储中的对象没有删除成功, 需要人工清理
type DeleteResult struct {
	Video         *model.Video `json:"video"`
	MediaReleased bool         `json:"media_released"`
}

func checkTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errno.ParamErr.WithMessage("Title cannot be empty")
	}
	if utf8.RuneCountInString(title) > constants.MaxTitleLength {
		return "", errno.ParamErr.WithMessage("Title is too long")
	}
	return title, nil
}

func (s *VideoService) release(publicIds ...string) bool {
	released := true
	for _, id := range publicIds {
		if id == "" {
			continue
		}
		if !storage.Delete(s.ctx, id) {
			hlog.CtxErrorf(s.ctx, "release media %s failed", id)
			released = false
		}
	}
	return released
}

func (s *VideoService) PublishVideo(actor int64, param *PublishParam) (*model.Video, error) {
	if !utils.ValidHandle(actor) {
		return nil, errno.ParamErr.WithMessage("Invalid user id")
	}
	title, err := checkTitle(param.Title)
	if err != nil {
		return nil, err
	}
	if param.VideoFile == "" || param.ThumbnailFile == "" {
		return nil, errno.ParamErr.WithMessage("Video file and thumbnail are required")
	}
	if storage == nil {
		return nil, errno.OssErr.WithMessage("Media storage is unavailable")
	}

	videoObj, err := storage.Upload(s.ctx, param.VideoFile)
	if err != nil {
		hlog.CtxErrorf(s.ctx, "upload video file failed: %v", err)
		return nil, errno.OssErr.WithMessage("Failed to upload video file")
	}
	coverObj, err := storage.Upload(s.ctx, param.ThumbnailFile)
	if err != nil {
		hlog.CtxErrorf(s.ctx, "upload thumbnail failed: %v", err)
		s.release(videoObj.PublicId)
		return nil, errno.OssErr.WithMessage("Failed to upload thumbnail")
	}

	video := &model.Video{
		VideoId:       utils.GenerateID(),
		UserId:        actor,
		Title:         title,
		Description:   strings.TrimSpace(param.Description),
		VideoUrl:      videoObj.Url,
		CoverUrl:      coverObj.Url,
		VideoPublicId: videoObj.PublicId,
		CoverPublicId: coverObj.PublicId,
		Duration:      videoObj.Duration,
		IsPublished:   true,
	}
	if err := db.InsertVideo(s.ctx, video); err != nil {
		s.release(videoObj.PublicId, coverObj.PublicId)
		return nil, storeErr(s.ctx, "insert video", err)
	}
	return video, nil
}

func (s *VideoService) GetVideo(videoId int64) (*model.Video, error) {
	if !utils.ValidHandle(videoId) {
		return nil, errno.ParamErr.WithMessage("Invalid video id")
	}
	video, err := db.GetVideoById(s.ctx, videoId)
	if err != nil {
		return nil, storeErr(s.ctx, "get video", err)
	}
	return video, nil
}

func (s *VideoService) ListVideos(q db.VideoQuery, page utils.PageParam) ([]*model.Video, int64, error) {
	if q.SortBy != "" {
		if _, ok := constants.VideoSortFields[q.SortBy]; !ok {
			return nil, 0, errno.ParamErr.WithMessage("Unsupported sort field: " + q.SortBy)
		}
	}
	if q.SortType != "" && !strings.EqualFold(q.SortType, "asc") && !strings.EqualFold(q.SortType, "desc") {
		return nil, 0, errno.ParamErr.WithMessage("sort_type must be asc or desc")
	}
	q.Keyword = strings.TrimSpace(q.Keyword)
	videos, total, err := db.ListVideos(s.ctx, q, page)
	if err != nil {
		return nil, 0, storeErr(s.ctx, "list videos", err)
	}
	return videos, total, nil
}

func (s *VideoService) loadOwned(videoId, actor int64) (*model.Video, error) {
	video, err := s.GetVideo(videoId)
	if err != nil {
		return nil, err
	}
	if !guard.IsOwner(video, actor) {
		return nil, errno.ForbiddenErr.WithMessage("You can only modify your own videos")
	}
	return video, nil
}

// UpdateVideo 新封面先上传成功再删除旧封面
func (s *VideoService) UpdateVideo(videoId, actor int64, param *UpdateParam) (*model.Video, error) {
	fields := make(map[string]interface{})
	if strings.TrimSpace(param.Title) != "" {
		title, err := checkTitle(param.Title)
		if err != nil {
			return nil, err
		}
		fields["title"] = title
	}
	if strings.TrimSpace(param.Description) != "" {
		fields["description"] = strings.TrimSpace(param.Description)
	}
	if len(fields) == 0 && param.ThumbnailFile == "" {
		return nil, errno.ParamErr.WithMessage("Nothing to update")
	}

	video, err := s.loadOwned(videoId, actor)
	if err != nil {
		return nil, err
	}

	var oldCover string
	var cover *oss.UploadResult
	if param.ThumbnailFile != "" {
		if storage == nil {
			return nil, errno.OssErr.WithMessage("Media storage is unavailable")
		}
		cover, err = storage.Upload(s.ctx, param.ThumbnailFile)
		if err != nil {
			hlog.CtxErrorf(s.ctx, "upload thumbnail failed: %v", err)
			return nil, errno.OssErr.WithMessage("Failed to upload thumbnail")
		}
		oldCover = video.CoverPublicId
		fields["cover_url"] = cover.Url
		fields["cover_public_id"] = cover.PublicId
	}

	if err := db.UpdateVideo(s.ctx, video, fields); err != nil {
		if cover != nil {
			s.release(cover.PublicId)
		}
		return nil, storeErr(s.ctx, "update video", err)
	}
	if cover != nil {
		s.release(oldCover)
	}
	return s.GetVideo(video.VideoId)
}

// DeleteVideo 先删除数据库记录, 再释放媒体文件
func (s *VideoService) DeleteVideo(videoId, actor int64) (*DeleteResult, error) {
	video, err := s.loadOwned(videoId, actor)
	if err != nil {
		return nil, err
	}
	commentIds, err := db.DeleteVideo(s.ctx, video.VideoId)
	if err != nil {
		return nil, storeErr(s.ctx, "delete video", err)
	}
	s.invalidateLikeCounts(video.VideoId, commentIds)
	released := storage != nil && s.release(video.VideoPublicId, video.CoverPublicId)
	if !released {
		hlog.CtxWarnf(s.ctx, "media of video %d was not released: %s %s", video.VideoId, video.VideoPublicId, video.CoverPublicId)
	}
	return &DeleteResult{Video: video, MediaReleased: released}, nil
}

// invalidateLikeCounts 清理已删除视频及其评论的点赞数缓存
func (s *VideoService) invalidateLikeCounts(videoId int64, commentIds []int64) {
	if likeCache == nil {
		return
	}
	if err := likeCache.Invalidate(s.ctx, constants.LikeKindVideo, videoId); err != nil {
		hlog.CtxWarnf(s.ctx, "invalidate like count of video %d failed: %v", videoId, err)
	}
	for _, id := range commentIds {
		if err := likeCache.Invalidate(s.ctx, constants.LikeKindComment, id); err != nil {
			hlog.CtxWarnf(s.ctx, "invalidate like count of comment %d failed: %v", id, err)
		}
	}
}

func (s *VideoService) TogglePublishStatus(videoId, actor int64) (*model.Video, error) {
	video, err := s.loadOwned(videoId, actor)
	if err != nil {
		return nil, err
	}
	published := !video.IsPublished
	if err := db.SetPublishStatus(s.ctx, video, published); err != nil {
		return nil, storeErr(s.ctx, "toggle publish status", err)
	}
	video.IsPublished = published
	return video, nil
}
