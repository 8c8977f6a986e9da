package mq

import (
	"time"

	"github.com/google/uuid"
)

// LikeEvent 点赞切换事件
type LikeEvent struct {
	UserID     int64  `json:"user_id"`     // 用户ID
	TargetType string `json:"target_type"` // video / comment / tweet
	TargetID   int64  `json:"target_id"`   // 目标ID
	ActionType string `json:"action_type"` // added / removed
	Timestamp  int64  `json:"timestamp"`
	EventID    string `json:"event_id"`
}

// SubscriptionEvent 订阅切换事件
type SubscriptionEvent struct {
	SubscriberID int64  `json:"subscriber_id"`
	ChannelID    int64  `json:"channel_id"`
	ActionType   string `json:"action_type"`
	Timestamp    int64  `json:"timestamp"`
	EventID      string `json:"event_id"`
}

// CommentEvent 评论事件
type CommentEvent struct {
	Type      string `json:"type"` // create, update, delete
	CommentID int64  `json:"comment_id"`
	UserID    int64  `json:"user_id"`
	VideoID   int64  `json:"video_id"`
	Timestamp int64  `json:"timestamp"`
	EventID   string `json:"event_id"`
}

func NewLikeEvent(userId int64, kind string, targetId int64, action string) *LikeEvent {
	return &LikeEvent{
		UserID:     userId,
		TargetType: kind,
		TargetID:   targetId,
		ActionType: action,
		Timestamp:  time.Now().Unix(),
		EventID:    uuid.New().String(),
	}
}

func NewSubscriptionEvent(subscriberId, channelId int64, action string) *SubscriptionEvent {
	return &SubscriptionEvent{
		SubscriberID: subscriberId,
		ChannelID:    channelId,
		ActionType:   action,
		Timestamp:    time.Now().Unix(),
		EventID:      uuid.New().String(),
	}
}

func NewCommentEvent(typ string, commentId, userId, videoId int64) *CommentEvent {
	return &CommentEvent{
		Type:      typ,
		CommentID: commentId,
		UserID:    userId,
		VideoID:   videoId,
		Timestamp: time.Now().Unix(),
		EventID:   uuid.New().String(),
	}
}

const (
	LikeEventExchange         = "like_events"
	SubscriptionEventExchange = "subscription_events"
	CommentEventExchange      = "comment_events"

	LikeEventQueue         = "like_event_queue"
	SubscriptionEventQueue = "subscription_event_queue"
	CommentEventQueue      = "comment_event_queue"
)
