package handlers

import (
	"context"

	"VidTube.com/cmd/relation/service"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/jwt"
	"VidTube.com/pkg/toggle"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	hutils "github.com/cloudwego/hertz/pkg/common/utils"
)

type PageParam struct {
	Page  int64 `query:"page"`
	Limit int64 `query:"limit"`
}

func bindPage(c *app.RequestContext) (utils.PageParam, error) {
	var p PageParam
	if err := c.BindQuery(&p); err != nil {
		hlog.Info(err)
		return utils.PageParam{}, errno.ParamErr.WithMessage("page and limit must be integers")
	}
	return utils.NewPageParam(p.Page, p.Limit), nil
}

func ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	actor, err := jwt.ActorFrom(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	channelId, err := utils.ParseHandle("channel id", c.Param("channelId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	action, err := service.NewRelationService(ctx).ToggleSubscription(actor, channelId)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, hutils.H{
		"channel_id":    channelId,
		"action":        action,
		"is_subscribed": action == toggle.Added,
	})
}

func GetSubscriberCount(ctx context.Context, c *app.RequestContext) {
	channelId, err := utils.ParseHandle("channel id", c.Param("channelId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	count, err := service.NewRelationService(ctx).GetSubscriberCount(channelId)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, hutils.H{
		"channel_id": channelId,
		"count":      count,
	})
}

func ListSubscribers(ctx context.Context, c *app.RequestContext) {
	channelId, err := utils.ParseHandle("channel id", c.Param("channelId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	page, err := bindPage(c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	users, err := service.NewRelationService(ctx).ListSubscribers(channelId, page)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, users)
}

func ListSubscribedChannels(ctx context.Context, c *app.RequestContext) {
	subscriberId, err := utils.ParseHandle("subscriber id", c.Param("subscriberId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	page, err := bindPage(c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	channels, err := service.NewRelationService(ctx).ListSubscribedChannels(subscriberId, page)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, channels)
}
