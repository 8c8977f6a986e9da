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

func bindPlaylist(c *app.RequestContext) (*PlaylistParam, error) {
	var p PlaylistParam
	if err := c.Bind(&p); err != nil {
		hlog.Info(err)
		return nil, errno.ParamErr.WithMessage("Invalid request body")
	}
	return &p, nil
}

func CreatePlaylist(ctx context.Context, c *app.RequestContext) {
	actor, err := jwt.ActorFrom(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	req, err := bindPlaylist(c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	playlist, err := service.NewPlaylistService(ctx).CreatePlaylist(actor, req.Name, req.Description)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, playlist)
}

func ListUserPlaylists(ctx context.Context, c *app.RequestContext) {
	userId, err := utils.ParseHandle("user id", c.Param("userId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	page, err := bindPage(c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	playlists, err := service.NewPlaylistService(ctx).ListUserPlaylists(userId, page)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, playlists)
}

func GetPlaylist(ctx context.Context, c *app.RequestContext) {
	playlistId, err := utils.ParseHandle("playlist id", c.Param("playlistId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	playlist, err := service.NewPlaylistService(ctx).GetPlaylist(playlistId)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, playlist)
}

func UpdatePlaylist(ctx context.Context, c *app.RequestContext) {
	actor, err := jwt.ActorFrom(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	playlistId, err := utils.ParseHandle("playlist id", c.Param("playlistId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	req, err := bindPlaylist(c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	playlist, err := service.NewPlaylistService(ctx).UpdatePlaylist(playlistId, actor, req.Name, req.Description)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, playlist)
}

func DeletePlaylist(ctx context.Context, c *app.RequestContext) {
	actor, err := jwt.ActorFrom(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	playlistId, err := utils.ParseHandle("playlist id", c.Param("playlistId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	playlist, err := service.NewPlaylistService(ctx).DeletePlaylist(playlistId, actor)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, playlist)
}

func playlistVideoIds(c *app.RequestContext) (playlistId, videoId int64, err error) {
	if playlistId, err = utils.ParseHandle("playlist id", c.Param("playlistId")); err != nil {
		return 0, 0, err
	}
	if videoId, err = utils.ParseHandle("video id", c.Param("videoId")); err != nil {
		return 0, 0, err
	}
	return playlistId, videoId, nil
}

func AddVideoToPlaylist(ctx context.Context, c *app.RequestContext) {
	actor, err := jwt.ActorFrom(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	playlistId, videoId, err := playlistVideoIds(c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	playlist, err := service.NewPlaylistService(ctx).AddVideo(playlistId, videoId, actor)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, playlist)
}

func RemoveVideoFromPlaylist(ctx context.Context, c *app.RequestContext) {
	actor, err := jwt.ActorFrom(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	playlistId, videoId, err := playlistVideoIds(c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	playlist, err := service.NewPlaylistService(ctx).RemoveVideo(playlistId, videoId, actor)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, playlist)
}
