package handlers

import (
	"context"

	"VidTube.com/cmd/video/dal/db"
	"VidTube.com/cmd/video/service"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/jwt"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	hutils "github.com/cloudwego/hertz/pkg/common/utils"
)

func ListVideos(ctx context.Context, c *app.RequestContext) {
	var req ListVideoParam
	if err := c.BindQuery(&req); err != nil {
		hlog.Info(err)
		utils.SendResponse(c, errno.ParamErr.WithMessage("Invalid query parameters"), nil)
		return
	}
	page := utils.NewPageParam(req.Page, req.Limit)
	videos, total, err := service.NewVideoService(ctx).ListVideos(db.VideoQuery{
		Keyword:       req.Query,
		UserId:        req.UserId,
		SortBy:        req.SortBy,
		SortType:      req.SortType,
		OnlyPublished: true,
	}, page)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, hutils.H{
		"videos": videos,
		"total":  total,
		"page":   page.PageNum,
		"limit":  page.PageSize,
	})
}

func PublishVideo(ctx context.Context, c *app.RequestContext) {
	actor, err := jwt.ActorFrom(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	var form VideoForm
	if err := c.Bind(&form); err != nil {
		hlog.Info(err)
		utils.SendResponse(c, errno.ParamErr.WithMessage("Invalid form"), nil)
		return
	}
	videoFile, err := saveUpload(c, "video_file")
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	thumbnail, err := saveUpload(c, "thumbnail")
	defer removeUploads(videoFile, thumbnail)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}

	video, err := service.NewVideoService(ctx).PublishVideo(actor, &service.PublishParam{
		Title:         form.Title,
		Description:   form.Description,
		VideoFile:     videoFile,
		ThumbnailFile: thumbnail,
	})
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, video)
}

func GetVideo(ctx context.Context, c *app.RequestContext) {
	videoId, err := utils.ParseHandle("video id", c.Param("videoId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	video, err := service.NewVideoService(ctx).GetVideo(videoId)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, video)
}

func UpdateVideo(ctx context.Context, c *app.RequestContext) {
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
	var form VideoForm
	if err := c.Bind(&form); err != nil {
		hlog.Info(err)
		utils.SendResponse(c, errno.ParamErr.WithMessage("Invalid form"), nil)
		return
	}
	thumbnail, err := saveUpload(c, "thumbnail")
	defer removeUploads(thumbnail)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}

	video, err := service.NewVideoService(ctx).UpdateVideo(videoId, actor, &service.UpdateParam{
		Title:         form.Title,
		Description:   form.Description,
		ThumbnailFile: thumbnail,
	})
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, video)
}

func DeleteVideo(ctx context.Context, c *app.RequestContext) {
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
	result, err := service.NewVideoService(ctx).DeleteVideo(videoId, actor)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, result)
}

func TogglePublishStatus(ctx context.Context, c *app.RequestContext) {
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
	video, err := service.NewVideoService(ctx).TogglePublishStatus(videoId, actor)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, video)
}
