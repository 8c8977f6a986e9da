package model

import "time"

// User 用户账号由外部认证服务创建, 这里只保存频道展示需要的字段
type User struct {
	UserId    int64     `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	UserName  string    `json:"user_name" gorm:"size:64;uniqueIndex"`
	AvatarUrl string    `json:"avatar_url" gorm:"size:512"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChannelStats 频道统计
type ChannelStats struct {
	TotalViews       int64 `json:"total_views"`
	TotalSubscribers int64 `json:"total_subscribers"`
	TotalLikes       int64 `json:"total_likes"`
	TotalVideos      int64 `json:"total_videos"`
}
