package db

import (
	"context"
	"strings"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// VideoQuery 视频列表的过滤与排序条件, SortBy 只接受白名单中的字段
type VideoQuery struct {
	Keyword       string
	UserId        int64
	SortBy        string
	SortType      string
	OnlyPublished bool
}

func InsertVideo(ctx context.Context, video *model.Video) error {
	if err := DB.WithContext(ctx).Create(video).Error; err != nil {
		return errors.WithMessage(err, "Failed to insert video")
	}
	return nil
}

func GetVideoById(ctx context.Context, videoId int64) (*model.Video, error) {
	var video model.Video
	if err := DB.WithContext(ctx).Where("video_id = ?", videoId).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Video not found")
		}
		return nil, errors.WithMessage(err, "Failed to get video")
	}
	return &video, nil
}

func IsVideoExist(ctx context.Context, videoId int64) (bool, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Video{}).Where("video_id = ?", videoId).Count(&count).Error; err != nil {
		return false, errors.WithMessage(err, "Failed to count video")
	}
	return count > 0, nil
}

func IsUserExist(ctx context.Context, userId int64) (bool, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userId).Count(&count).Error; err != nil {
		return false, errors.WithMessage(err, "Failed to count user")
	}
	return count > 0, nil
}

func orderClause(sortBy, sortType string) string {
	column, ok := constants.VideoSortFields[sortBy]
	if !ok {
		return "video_id ASC"
	}
	if strings.EqualFold(sortType, "desc") {
		return column + " DESC, video_id DESC"
	}
	return column + " ASC, video_id ASC"
}

func filterVideos(ctx context.Context, q VideoQuery) *gorm.DB {
	tx := DB.WithContext(ctx).Model(&model.Video{})
	if q.Keyword != "" {
		like := "%" + q.Keyword + "%"
		tx = tx.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if q.UserId > 0 {
		tx = tx.Where("user_id = ?", q.UserId)
	}
	if q.OnlyPublished {
		tx = tx.Where("is_published = ?", true)
	}
	return tx
}

func ListVideos(ctx context.Context, q VideoQuery, page utils.PageParam) ([]*model.Video, int64, error) {
	videos := make([]*model.Video, 0)
	var total int64
	if err := filterVideos(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, errors.WithMessage(err, "Failed to count videos")
	}
	if err := filterVideos(ctx, q).Order(orderClause(q.SortBy, q.SortType)).
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&videos).Error; err != nil {
		return nil, 0, errors.WithMessage(err, "Failed to list videos")
	}
	return videos, total, nil
}

func UpdateVideo(ctx context.Context, video *model.Video, fields map[string]interface{}) error {
	if err := DB.WithContext(ctx).Model(video).Updates(fields).Error; err != nil {
		return errors.WithMessage(err, "Failed to update video")
	}
	return nil
}

func SetPublishStatus(ctx context.Context, video *model.Video, published bool) error {
	if err := DB.WithContext(ctx).Model(video).Update("is_published", published).Error; err != nil {
		return errors.WithMessage(err, "Failed to update publish status")
	}
	return nil
}

// DeleteVideo 删除视频以及它的评论、点赞和播放列表位置, 返回被删除的评论ID
func DeleteVideo(ctx context.Context, videoId int64) ([]int64, error) {
	commentIds := make([]int64, 0)
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Comment{}).Where("video_id = ?", videoId).
			Pluck("comment_id", &commentIds).Error; err != nil {
			return errors.WithMessage(err, "Failed to list comments")
		}
		comments := tx.Model(&model.Comment{}).Select("comment_id").Where("video_id = ?", videoId)
		if err := tx.Where("target_type = ? AND target_id IN (?)", constants.LikeKindComment, comments).
			Delete(&model.Like{}).Error; err != nil {
			return errors.WithMessage(err, "Failed to delete comment likes")
		}
		if err := tx.Where("video_id = ?", videoId).Delete(&model.Comment{}).Error; err != nil {
			return errors.WithMessage(err, "Failed to delete comments")
		}
		if err := tx.Where("target_type = ? AND target_id = ?", constants.LikeKindVideo, videoId).
			Delete(&model.Like{}).Error; err != nil {
			return errors.WithMessage(err, "Failed to delete video likes")
		}
		if err := tx.Where("video_id = ?", videoId).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return errors.WithMessage(err, "Failed to delete playlist entries")
		}
		if err := tx.Where("video_id = ?", videoId).Delete(&model.Video{}).Error; err != nil {
			return errors.WithMessage(err, "Failed to delete video")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commentIds, nil
}
