package mq

import "context"

// MessageProducer 消息生产者接口
type MessageProducer interface {
	PublishLikeEvent(ctx context.Context, event *LikeEvent) error
	PublishSubscriptionEvent(ctx context.Context, event *SubscriptionEvent) error
	PublishCommentEvent(ctx context.Context, event *CommentEvent) error
}

var _ MessageProducer = (*Producer)(nil)
