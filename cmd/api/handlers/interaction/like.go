package handlers

import (
	"context"

	"VidTube.com/cmd/interaction/service"
	"VidTube.com/pkg/jwt"
	"VidTube.com/pkg/toggle"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	hutils "github.com/cloudwego/hertz/pkg/common/utils"
)

func ToggleLike(ctx context.Context, c *app.RequestContext) {
	actor, err := jwt.ActorFrom(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	kind := c.Param("kind")
	targetId, err := utils.ParseHandle(kind+" id", c.Param("targetId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	action, err := service.NewLikeService(ctx).ToggleLike(actor, kind, targetId)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, hutils.H{
		"target_type": kind,
		"target_id":   targetId,
		"action":      action,
		"is_liked":    action == toggle.Added,
	})
}

func GetLikeCount(ctx context.Context, c *app.RequestContext) {
	kind := c.Param("kind")
	targetId, err := utils.ParseHandle(kind+" id", c.Param("targetId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	count, err := service.NewLikeService(ctx).GetLikeCount(kind, targetId)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, hutils.H{
		"target_type": kind,
		"target_id":   targetId,
		"count":       count,
	})
}

func ListLikedVideos(ctx context.Context, c *app.RequestContext) {
	actor, err := jwt.ActorFrom(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	page, err := bindPage(c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	videos, err := service.NewLikeService(ctx).ListLikedVideos(actor, page)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, videos)
}
