package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"VidTube.com/cmd/interaction/dal/db"
	"VidTube.com/cmd/interaction/infras/redis"
	"VidTube.com/cmd/interaction/service"
	"VidTube.com/config"
	"VidTube.com/pkg/database"
	"VidTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/sirupsen/logrus"
)

// 点赞计数缓存预热进程, 与API共用配置文件
func main() {
	config.Init()
	hlog.SetLevel(hlog.LevelInfo)

	gdb, err := database.Init()
	if err != nil {
		logrus.Fatalf("init database failed: %v", err)
	}
	db.Init(gdb)

	rdb := redis.Load()
	if rdb == nil {
		logrus.Fatal("redis is required by the like count consumer")
	}

	rabbitmqURL := mq.URLFromConfig()
	if rabbitmqURL == "" {
		logrus.Fatal("rabbitmq.addr is not configured")
	}
	consumer, err := mq.NewConsumer(rabbitmqURL)
	if err != nil {
		logrus.Fatalf("Failed to create consumer: %v", err)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := service.NewLikeCountRefresher(redis.NewLikeCacheManager(rdb))
	if err := consumer.ConsumeLikeEvents(ctx, handler); err != nil {
		logrus.Fatalf("Failed to start like event consumer: %v", err)
	}
	hlog.Info("Like event consumer started, waiting for messages...")

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	hlog.Info("Shutting down like event consumer...")
}
