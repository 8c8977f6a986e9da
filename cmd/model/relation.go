package model

import "time"

// Subscription 订阅关系, subscriber 订阅了 channel
type Subscription struct {
	SubscriptionId int64     `json:"subscription_id" gorm:"primaryKey;autoIncrement:false"`
	SubscriberId   int64     `json:"subscriber_id" gorm:"uniqueIndex:uk_subscription,priority:1"`
	ChannelId      int64     `json:"channel_id" gorm:"uniqueIndex:uk_subscription,priority:2;index"`
	CreatedAt      time.Time `json:"created_at"`
}
