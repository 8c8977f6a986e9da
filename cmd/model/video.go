package model

import "time"

type Video struct {
	VideoId       int64     `json:"video_id" gorm:"primaryKey;autoIncrement:false"`
	UserId        int64     `json:"user_id" gorm:"index"`
	Title         string    `json:"title" gorm:"size:200"`
	Description   string    `json:"description" gorm:"type:text"`
	VideoUrl      string    `json:"video_url" gorm:"size:512"`
	CoverUrl      string    `json:"cover_url" gorm:"size:512"`
	VideoPublicId string    `json:"-" gorm:"size:255"`
	CoverPublicId string    `json:"-" gorm:"size:255"`
	Duration      float64   `json:"duration"`
	Views         int64     `json:"views"`
	IsPublished   bool      `json:"is_published"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (v *Video) OwnerId() int64 {
	if v == nil {
		return 0
	}
	return v.UserId
}

// Playlist 播放列表, 视频顺序由 PlaylistVideo 的自增ID决定
type Playlist struct {
	PlaylistId  int64     `json:"playlist_id" gorm:"primaryKey;autoIncrement:false"`
	UserId      int64     `json:"user_id" gorm:"index"`
	Name        string    `json:"name" gorm:"size:128"`
	Description string    `json:"description" gorm:"type:text"`
	Videos      []int64   `json:"videos" gorm:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Playlist) OwnerId() int64 {
	if p == nil {
		return 0
	}
	return p.UserId
}

// PlaylistVideo 播放列表中的一个位置, 同一视频可以出现多次
type PlaylistVideo struct {
	Id         int64     `gorm:"primaryKey;autoIncrement"`
	PlaylistId int64     `gorm:"index"`
	VideoId    int64     `gorm:"index"`
	CreatedAt  time.Time
}
