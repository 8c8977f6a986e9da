package handlers

import (
	"context"

	"VidTube.com/cmd/video/service"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/jwt"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// bindChannel 未指定 channel_id 时查看自己的频道
func bindChannel(ctx context.Context, c *app.RequestContext) (*ChannelParam, error) {
	var p ChannelParam
	if err := c.BindQuery(&p); err != nil {
		hlog.Info(err)
		return nil, errno.ParamErr.WithMessage("Invalid query parameters")
	}
	if p.ChannelId == 0 {
		actor, err := jwt.ActorFrom(ctx, c)
		if err != nil {
			return nil, err
		}
		p.ChannelId = actor
	}
	return &p, nil
}

func GetChannelStats(ctx context.Context, c *app.RequestContext) {
	req, err := bindChannel(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	stats, err := service.NewChannelService(ctx).GetChannelStats(req.ChannelId)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, stats)
}

func GetChannelVideos(ctx context.Context, c *app.RequestContext) {
	req, err := bindChannel(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	videos, err := service.NewChannelService(ctx).GetChannelVideos(req.ChannelId, utils.NewPageParam(req.Page, req.Limit))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, videos)
}
