package db

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func CreatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	if err := DB.WithContext(ctx).Create(playlist).Error; err != nil {
		return errors.WithMessage(err, "Failed to create playlist")
	}
	return nil
}

// GetPlaylistById 同时加载按加入顺序排列的视频ID
func GetPlaylistById(ctx context.Context, playlistId int64) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := DB.WithContext(ctx).Where("playlist_id = ?", playlistId).First(&playlist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Playlist not found")
		}
		return nil, errors.WithMessage(err, "Failed to get playlist")
	}
	videoIds, err := GetPlaylistVideoIds(ctx, playlistId)
	if err != nil {
		return nil, err
	}
	playlist.Videos = videoIds
	return &playlist, nil
}

func GetPlaylistVideoIds(ctx context.Context, playlistId int64) ([]int64, error) {
	videoIds := make([]int64, 0)
	if err := DB.WithContext(ctx).Model(&model.PlaylistVideo{}).
		Where("playlist_id = ?", playlistId).
		Order("id ASC").
		Pluck("video_id", &videoIds).Error; err != nil {
		return nil, errors.WithMessage(err, "Failed to get playlist videos")
	}
	return videoIds, nil
}

// AddVideoToPlaylist 追加到末尾, 已存在的视频也会再追加一次
func AddVideoToPlaylist(ctx context.Context, playlistId, videoId int64) error {
	if err := DB.WithContext(ctx).Create(&model.PlaylistVideo{
		PlaylistId: playlistId,
		VideoId:    videoId,
	}).Error; err != nil {
		return errors.WithMessage(err, "Failed to add video to playlist")
	}
	return nil
}

// DeleteVideoFromPlaylist 删除该视频在列表中的所有位置
func DeleteVideoFromPlaylist(ctx context.Context, playlistId, videoId int64) error {
	if err := DB.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistId, videoId).
		Delete(&model.PlaylistVideo{}).Error; err != nil {
		return errors.WithMessage(err, "Failed to delete video from playlist")
	}
	return nil
}

func UpdatePlaylist(ctx context.Context, playlist *model.Playlist, fields map[string]interface{}) error {
	if err := DB.WithContext(ctx).Model(playlist).Updates(fields).Error; err != nil {
		return errors.WithMessage(err, "Failed to update playlist")
	}
	return nil
}

func DeletePlaylist(ctx context.Context, playlistId int64) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlistId).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return errors.WithMessage(err, "Failed to delete playlist videos")
		}
		if err := tx.Where("playlist_id = ?", playlistId).Delete(&model.Playlist{}).Error; err != nil {
			return errors.WithMessage(err, "Failed to delete playlist")
		}
		return nil
	})
}

// GetUserPlaylistsPaged 获取用户的播放列表, 不加载视频
func GetUserPlaylistsPaged(ctx context.Context, userId int64, page utils.PageParam) ([]*model.Playlist, error) {
	playlists := make([]*model.Playlist, 0)
	if err := DB.WithContext(ctx).Where("user_id = ?", userId).
		Order("playlist_id ASC").
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&playlists).Error; err != nil {
		return nil, errors.WithMessage(err, "Failed to get playlists")
	}
	return playlists, nil
}
