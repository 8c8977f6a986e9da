package model

import "time"

type Comment struct {
	CommentId int64     `json:"comment_id" gorm:"primaryKey;autoIncrement:false"`
	VideoId   int64     `json:"video_id" gorm:"index"`
	UserId    int64     `json:"user_id" gorm:"index"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Comment) OwnerId() int64 {
	if c == nil {
		return 0
	}
	return c.UserId
}

type Tweet struct {
	TweetId   int64     `json:"tweet_id" gorm:"primaryKey;autoIncrement:false"`
	UserId    int64     `json:"user_id" gorm:"index"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tweet) OwnerId() int64 {
	if t == nil {
		return 0
	}
	return t.UserId
}

// Like 一条点赞只指向一个目标, (user_id,target_type,target_id) 唯一
type Like struct {
	LikeId     int64     `json:"like_id" gorm:"primaryKey;autoIncrement:false"`
	UserId     int64     `json:"liked_by" gorm:"uniqueIndex:uk_like_target,priority:1"`
	TargetType string    `json:"target_type" gorm:"size:16;uniqueIndex:uk_like_target,priority:2;index:idx_like_target,priority:1"`
	TargetId   int64     `json:"target_id" gorm:"uniqueIndex:uk_like_target,priority:3;index:idx_like_target,priority:2"`
	CreatedAt  time.Time `json:"created_at"`
}
