package service

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/cmd/video/dal/db"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
)

type ChannelService struct {
	ctx context.Context
}

func NewChannelService(ctx context.Context) *ChannelService {
	return &ChannelService{ctx: ctx}
}

func (s *ChannelService) checkChannel(channelId int64) error {
	if !utils.ValidHandle(channelId) {
		return errno.ParamErr.WithMessage("Invalid channel id")
	}
	exist, err := db.IsUserExist(s.ctx, channelId)
	if err != nil {
		return storeErr(s.ctx, "check channel", err)
	}
	if !exist {
		return errno.NotFoundErr.WithMessage("Channel not found")
	}
	return nil
}

func (s *ChannelService) GetChannelStats(channelId int64) (*model.ChannelStats, error) {
	if err := s.checkChannel(channelId); err != nil {
		return nil, err
	}
	stats, err := db.GetChannelStats(s.ctx, channelId)
	if err != nil {
		return nil, storeErr(s.ctx, "get channel stats", err)
	}
	return stats, nil
}

func (s *ChannelService) GetChannelVideos(channelId int64, page utils.PageParam) ([]*model.Video, error) {
	if err := s.checkChannel(channelId); err != nil {
		return nil, err
	}
	videos, err := db.GetChannelVideosPaged(s.ctx, channelId, page)
	if err != nil {
		return nil, storeErr(s.ctx, "get channel videos", err)
	}
	return videos, nil
}
