package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"VidTube.com/pkg/constants"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// LikeCacheManager 缓存目标的点赞数, 切换点赞后删除对应key, 下次读取时回源
type LikeCacheManager struct {
	client     redis.Cmdable
	defaultTTL time.Duration
}

func NewLikeCacheManager(client redis.Cmdable) *LikeCacheManager {
	return &LikeCacheManager{
		client:     client,
		defaultTTL: constants.LikeCountTTL,
	}
}

func countKey(kind string, targetId int64) string {
	return fmt.Sprintf("%s%s:%d", constants.LikeCountKeyPrefix, kind, targetId)
}

// GetLikeCount 第二个返回值表示是否命中缓存
func (lcm *LikeCacheManager) GetLikeCount(ctx context.Context, kind string, targetId int64) (int64, bool, error) {
	val, err := lcm.client.Get(ctx, countKey(kind, targetId)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.WithMessage(err, "get like count from redis failed")
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, errors.WithMessage(err, "corrupted like count in redis")
	}
	return count, true, nil
}

func (lcm *LikeCacheManager) SetLikeCount(ctx context.Context, kind string, targetId, count int64) error {
	if err := lcm.client.Set(ctx, countKey(kind, targetId), count, lcm.defaultTTL).Err(); err != nil {
		return errors.WithMessage(err, "set like count to redis failed")
	}
	return nil
}

func (lcm *LikeCacheManager) Invalidate(ctx context.Context, kind string, targetId int64) error {
	if err := lcm.client.Del(ctx, countKey(kind, targetId)).Err(); err != nil {
		return errors.WithMessage(err, "invalidate like count failed")
	}
	return nil
}

func (lcm *LikeCacheManager) HealthCheck(ctx context.Context) error {
	return lcm.client.Ping(ctx).Err()
}
