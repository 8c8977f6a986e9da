package db

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/utils"
	"github.com/pkg/errors"
)

// GetChannelStats 用一条语句读出频道的四项统计, 每一项都是参数化的子查询
func GetChannelStats(ctx context.Context, channelId int64) (*model.ChannelStats, error) {
	tx := DB.WithContext(ctx)
	views := tx.Model(&model.Video{}).Select("COALESCE(SUM(views), 0)").Where("user_id = ?", channelId)
	subscribers := tx.Model(&model.Subscription{}).Select("COUNT(*)").Where("channel_id = ?", channelId)
	likes := tx.Model(&model.Like{}).Select("COUNT(*)").
		Joins("JOIN videos ON videos.video_id = likes.target_id").
		Where("likes.target_type = ? AND videos.user_id = ?", constants.LikeKindVideo, channelId)
	videos := tx.Model(&model.Video{}).Select("COUNT(*)").Where("user_id = ?", channelId)

	var stats model.ChannelStats
	if err := tx.Raw("SELECT (?) AS total_views, (?) AS total_subscribers, (?) AS total_likes, (?) AS total_videos",
		views, subscribers, likes, videos).Scan(&stats).Error; err != nil {
		return nil, errors.WithMessage(err, "Failed to get channel stats")
	}
	return &stats, nil
}

func GetChannelVideosPaged(ctx context.Context, channelId int64, page utils.PageParam) ([]*model.Video, error) {
	videos := make([]*model.Video, 0)
	if err := DB.WithContext(ctx).Where("user_id = ?", channelId).
		Order("video_id ASC").
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&videos).Error; err != nil {
		return nil, errors.WithMessage(err, "Failed to get channel videos")
	}
	return videos, nil
}
