package lock

import (
	"context"
	"time"

	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisLocker 基于redsync的分布式锁, 多实例部署时保证同一对关系的切换串行执行
type RedisLocker struct {
	rs         *redsync.Redsync
	expiry     time.Duration
	tries      int
	retryDelay time.Duration
}

func NewRedisLocker(client redis.UniversalClient) *RedisLocker {
	return &RedisLocker{
		rs:         redsync.New(goredis.NewPool(client)),
		expiry:     constants.LockExpiry,
		tries:      constants.LockTries,
		retryDelay: constants.LockRetryDelay,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	mutex := l.rs.NewMutex(constants.LockKeyPrefix+key,
		redsync.WithExpiry(l.expiry),
		redsync.WithTries(l.tries),
		redsync.WithRetryDelay(l.retryDelay),
	)
	if err := mutex.LockContext(ctx); err != nil {
		if lockTaken(ctx, err) {
			hlog.CtxWarnf(ctx, "acquire lock %s failed: %v", key, err)
			return nil, errBusy
		}
		hlog.CtxErrorf(ctx, "acquire lock %s failed, redis unavailable: %v", key, err)
		return nil, errno.RedisErr
	}
	return func() {
		// 请求的ctx可能已经结束, 解锁使用独立的ctx
		if ok, err := mutex.UnlockContext(context.Background()); !ok || err != nil {
			hlog.CtxWarnf(ctx, "release lock %s failed: %v", key, err)
		}
	}, nil
}

// lockTaken 锁被其他请求持有或等待被取消时返回true, 其余为Redis本身的错误
func lockTaken(ctx context.Context, err error) bool {
	var taken *redsync.ErrTaken
	return errors.Is(err, redsync.ErrFailed) || errors.As(err, &taken) || ctx.Err() != nil
}
