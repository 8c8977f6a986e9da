package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/model"
	"VidTube.com/cmd/video/dal/db"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/guard"
	"VidTube.com/pkg/utils"
)

type PlaylistService struct {
	ctx context.Context
}

func NewPlaylistService(ctx context.Context) *PlaylistService {
	return &PlaylistService{ctx: ctx}
}

func (s *PlaylistService) CreatePlaylist(actor int64, name, description string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errno.ParamErr.WithMessage("Playlist name cannot be empty")
	}
	if !utils.ValidHandle(actor) {
		return nil, errno.ParamErr.WithMessage("Invalid user id")
	}
	playlist := &model.Playlist{
		PlaylistId:  utils.GenerateID(),
		UserId:      actor,
		Name:        name,
		Description: strings.TrimSpace(description),
		Videos:      []int64{},
	}
	if err := db.CreatePlaylist(s.ctx, playlist); err != nil {
		return nil, storeErr(s.ctx, "create playlist", err)
	}
	return playlist, nil
}

func (s *PlaylistService) GetPlaylist(playlistId int64) (*model.Playlist, error) {
	if !utils.ValidHandle(playlistId) {
		return nil, errno.ParamErr.WithMessage("Invalid playlist id")
	}
	playlist, err := db.GetPlaylistById(s.ctx, playlistId)
	if err != nil {
		return nil, storeErr(s.ctx, "get playlist", err)
	}
	return playlist, nil
}

func (s *PlaylistService) ListUserPlaylists(userId int64, page utils.PageParam) ([]*model.Playlist, error) {
	if !utils.ValidHandle(userId) {
		return nil, errno.ParamErr.WithMessage("Invalid user id")
	}
	playlists, err := db.GetUserPlaylistsPaged(s.ctx, userId, page)
	if err != nil {
		return nil, storeErr(s.ctx, "list playlists", err)
	}
	return playlists, nil
}

// loadOwned 播放列表的所有修改都要求操作者是创建者
func (s *PlaylistService) loadOwned(playlistId, actor int64) (*model.Playlist, error) {
	playlist, err := s.GetPlaylist(playlistId)
	if err != nil {
		return nil, err
	}
	if !guard.IsOwner(playlist, actor) {
		return nil, errno.ForbiddenErr.WithMessage("You can only modify your own playlists")
	}
	return playlist, nil
}

func (s *PlaylistService) UpdatePlaylist(playlistId, actor int64, name, description string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errno.ParamErr.WithMessage("Playlist name cannot be empty")
	}
	playlist, err := s.loadOwned(playlistId, actor)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{
		"name":        name,
		"description": strings.TrimSpace(description),
	}
	if err := db.UpdatePlaylist(s.ctx, playlist, fields); err != nil {
		return nil, storeErr(s.ctx, "update playlist", err)
	}
	return s.GetPlaylist(playlistId)
}

func (s *PlaylistService) DeletePlaylist(playlistId, actor int64) (*model.Playlist, error) {
	playlist, err := s.loadOwned(playlistId, actor)
	if err != nil {
		return nil, err
	}
	if err := db.DeletePlaylist(s.ctx, playlist.PlaylistId); err != nil {
		return nil, storeErr(s.ctx, "delete playlist", err)
	}
	return playlist, nil
}

// AddVideo 把视频追加到列表末尾, 重复加入会保留多份
func (s *PlaylistService) AddVideo(playlistId, videoId, actor int64) (*model.Playlist, error) {
	if !utils.ValidHandle(playlistId) || !utils.ValidHandle(videoId) {
		return nil, errno.ParamErr.WithMessage("Invalid playlist or video id")
	}
	playlist, err := s.loadOwned(playlistId, actor)
	if err != nil {
		return nil, err
	}
	exist, err := db.IsVideoExist(s.ctx, videoId)
	if err != nil {
		return nil, storeErr(s.ctx, "check video", err)
	}
	if !exist {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}
	if err := db.AddVideoToPlaylist(s.ctx, playlist.PlaylistId, videoId); err != nil {
		return nil, storeErr(s.ctx, "add video to playlist", err)
	}
	return s.GetPlaylist(playlistId)
}

// RemoveVideo 删除视频在列表中的全部位置, 视频不在列表中时不报错
func (s *PlaylistService) RemoveVideo(playlistId, videoId, actor int64) (*model.Playlist, error) {
	if !utils.ValidHandle(playlistId) || !utils.ValidHandle(videoId) {
		return nil, errno.ParamErr.WithMessage("Invalid playlist or video id")
	}
	playlist, err := s.loadOwned(playlistId, actor)
	if err != nil {
		return nil, err
	}
	if err := db.DeleteVideoFromPlaylist(s.ctx, playlist.PlaylistId, videoId); err != nil {
		return nil, storeErr(s.ctx, "remove video from playlist", err)
	}
	return s.GetPlaylist(playlistId)
}
