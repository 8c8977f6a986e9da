package db

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/database"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/pkg/errors"
)

func IsLikeExist(ctx context.Context, userId int64, kind string, targetId int64) (bool, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userId, kind, targetId).
		Count(&count).Error; err != nil {
		return false, errors.WithMessage(err, "count like failed")
	}
	return count > 0, nil
}

// CreateLike 唯一索引冲突时返回 errno.ConflictErr
func CreateLike(ctx context.Context, like *model.Like) error {
	if err := DB.WithContext(ctx).Create(like).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return errno.ConflictErr.WithMessage("Like already exists")
		}
		return errors.WithMessage(err, "create like failed")
	}
	return nil
}

func DeleteLike(ctx context.Context, userId int64, kind string, targetId int64) error {
	if err := DB.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userId, kind, targetId).
		Delete(&model.Like{}).Error; err != nil {
		return errors.WithMessage(err, "delete like failed")
	}
	return nil
}

func GetLikeCount(ctx context.Context, kind string, targetId int64) (int64, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Like{}).
		Where("target_type = ? AND target_id = ?", kind, targetId).
		Count(&count).Error; err != nil {
		return 0, errors.WithMessage(err, "count likes of target failed")
	}
	return count, nil
}

// IsTargetExist 检查点赞目标是否存在
func IsTargetExist(ctx context.Context, kind string, targetId int64) (bool, error) {
	switch kind {
	case constants.LikeKindVideo:
		return IsVideoExist(ctx, targetId)
	case constants.LikeKindComment:
		return exist(ctx, &model.Comment{}, "comment_id = ?", targetId)
	case constants.LikeKindTweet:
		return exist(ctx, &model.Tweet{}, "tweet_id = ?", targetId)
	}
	return false, errno.ParamErr.WithMessage("Unsupported like target: " + kind)
}

func IsVideoExist(ctx context.Context, videoId int64) (bool, error) {
	return exist(ctx, &model.Video{}, "video_id = ?", videoId)
}

func exist(ctx context.Context, m interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(m).Where(query, args...).Count(&count).Error; err != nil {
		return false, errors.WithMessage(err, "check existence failed")
	}
	return count > 0, nil
}

// GetLikedVideosPaged 按点赞先后返回用户点赞过的视频, 只统计视频类型的点赞
func GetLikedVideosPaged(ctx context.Context, userId int64, page utils.PageParam) ([]*model.Video, error) {
	videos := make([]*model.Video, 0)
	if err := DB.WithContext(ctx).Model(&model.Like{}).
		Select("videos.*").
		Joins("JOIN videos ON videos.video_id = likes.target_id").
		Where("likes.user_id = ? AND likes.target_type = ?", userId, constants.LikeKindVideo).
		Order("likes.like_id ASC").
		Offset(page.Offset()).Limit(page.Limit()).
		Scan(&videos).Error; err != nil {
		return nil, errors.WithMessage(err, "list liked videos failed")
	}
	return videos, nil
}
