package redis

import (
	"context"
	"time"

	"VidTube.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// Load 连接redis, 连接失败时返回nil, 调用方退化为进程内锁和直接查库
func Load() *redis.Client {
	if config.ConfigInfo.Redis.Addr == "" {
		hlog.Warn("redis addr not configured")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.ConfigInfo.Redis.Addr,
		Password: config.ConfigInfo.Redis.Password,
		DB:       config.ConfigInfo.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		hlog.Errorf("ping redis %s failed: %v", config.ConfigInfo.Redis.Addr, err)
		_ = client.Close()
		return nil
	}
	hlog.Info("Connect Redis Success")
	redisClient = client
	return client
}

func Client() *redis.Client {
	return redisClient
}
