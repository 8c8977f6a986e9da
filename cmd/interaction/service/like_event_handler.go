package service

import (
	"context"

	"VidTube.com/cmd/interaction/dal/db"
	"VidTube.com/pkg/mq"
	"github.com/pkg/errors"
)

// LikeCountRefresher 消费点赞事件, 按数据库中的最新计数预热缓存
type LikeCountRefresher struct {
	cache LikeCountCache
}

func NewLikeCountRefresher(cache LikeCountCache) *LikeCountRefresher {
	return &LikeCountRefresher{cache: cache}
}

func (h *LikeCountRefresher) HandleLikeEvent(ctx context.Context, event *mq.LikeEvent) error {
	if !ValidLikeKind(event.TargetType) {
		// 未知类型重试也不会成功
		return nil
	}
	count, err := db.GetLikeCount(ctx, event.TargetType, event.TargetID)
	if err != nil {
		return errors.WithMessage(err, "refresh like count")
	}
	if err := h.cache.SetLikeCount(ctx, event.TargetType, event.TargetID, count); err != nil {
		return errors.WithMessage(err, "write like count cache")
	}
	return nil
}
