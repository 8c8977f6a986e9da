package handlers

import (
	"context"

	"VidTube.com/cmd/interaction/service"
	"VidTube.com/pkg/jwt"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	hutils "github.com/cloudwego/hertz/pkg/common/utils"
)

func ListVideoComments(ctx context.Context, c *app.RequestContext) {
	videoId, err := utils.ParseHandle("video id", c.Param("videoId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	page, err := bindPage(c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	comments, err := service.NewCommentService(ctx).ListVideoComments(videoId, page)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, comments)
}

func GetCommentCount(ctx context.Context, c *app.RequestContext) {
	videoId, err := utils.ParseHandle("video id", c.Param("videoId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	count, err := service.NewCommentService(ctx).GetCommentCount(videoId)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, hutils.H{
		"video_id": videoId,
		"count":    count,
	})
}

func CreateComment(ctx context.Context, c *app.RequestContext) {
	actor, err := jwt.ActorFrom(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	videoId, err := utils.ParseHandle("video id", c.Param("videoId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	content, err := bindContent(c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	comment, err := service.NewCommentService(ctx).CreateComment(videoId, actor, content)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, comment)
}

func UpdateComment(ctx context.Context, c *app.RequestContext) {
	actor, err := jwt.ActorFrom(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	commentId, err := utils.ParseHandle("comment id", c.Param("commentId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	content, err := bindContent(c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	comment, err := service.NewCommentService(ctx).UpdateComment(commentId, actor, content)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, comment)
}

func DeleteComment(ctx context.Context, c *app.RequestContext) {
	actor, err := jwt.ActorFrom(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	commentId, err := utils.ParseHandle("comment id", c.Param("commentId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	comment, err := service.NewCommentService(ctx).DeleteComment(commentId, actor)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, comment)
}
