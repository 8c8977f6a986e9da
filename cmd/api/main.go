package main

import (
	"context"
	"time"

	"VidTube.com/cmd/api/router"
	"VidTube.com/cmd/api/router/authfunc"
	interactiondb "VidTube.com/cmd/interaction/dal/db"
	likecache "VidTube.com/cmd/interaction/infras/redis"
	interaction "VidTube.com/cmd/interaction/service"
	relationdb "VidTube.com/cmd/relation/dal/db"
	relation "VidTube.com/cmd/relation/service"
	videodb "VidTube.com/cmd/video/dal/db"
	video "VidTube.com/cmd/video/service"
	"VidTube.com/config"
	"VidTube.com/config/jaeger"
	"VidTube.com/config/pprof"
	"VidTube.com/pkg/database"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/jwt"
	"VidTube.com/pkg/lock"
	"VidTube.com/pkg/middleware"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/oss"
	"VidTube.com/pkg/toggle"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/cors"
	"github.com/sirupsen/logrus"
)

func setLogLevel(level string) {
	switch level {
	case "debug":
		hlog.SetLevel(hlog.LevelDebug)
	case "warn":
		hlog.SetLevel(hlog.LevelWarn)
	case "error":
		hlog.SetLevel(hlog.LevelError)
	default:
		hlog.SetLevel(hlog.LevelInfo)
	}
}

// Init 初始化存储、锁、缓存、消息队列和对象存储, 可选组件失败时降级运行
func Init() (cleanup func()) {
	config.Init()
	setLogLevel(config.ConfigInfo.Log.Level)

	if err := utils.InitSnowflake(config.ConfigInfo.Snowflake.WorkerID, config.ConfigInfo.Snowflake.DatacenterID); err != nil {
		logrus.Fatalf("init snowflake failed: %v", err)
	}

	gdb, err := database.Init()
	if err != nil {
		logrus.Fatalf("init database failed: %v", err)
	}
	if err := database.Migrate(gdb); err != nil {
		logrus.Fatalf("migrate database failed: %v", err)
	}
	interactiondb.Init(gdb)
	relationdb.Init(gdb)
	videodb.Init(gdb)

	// 没有Redis时退化为进程内的锁, 点赞数直接查库
	var locker lock.Locker = lock.NewKeyedLocker()
	var cache interaction.LikeCountCache
	if rdb := likecache.Load(); rdb != nil {
		locker = lock.NewRedisLocker(rdb)
		manager := likecache.NewLikeCacheManager(rdb)
		cache = manager
		video.InitLikeCache(manager)
	}
	engine := toggle.NewEngine(locker)

	var producer mq.MessageProducer
	var p *mq.Producer
	if url := mq.URLFromConfig(); url == "" {
		hlog.Warn("rabbitmq not configured, domain events disabled")
	} else if p, err = mq.NewProducer(url); err != nil {
		hlog.Warnf("rabbitmq unavailable, domain events disabled: %v", err)
	} else {
		producer = p
	}

	interaction.Init(interaction.Components{Engine: engine, Cache: cache, Producer: producer})
	relation.Init(engine, producer)

	storage, err := oss.InitMinio()
	if err != nil {
		hlog.Warnf("minio unavailable, publishing videos is disabled: %v", err)
		video.Init(nil)
	} else {
		video.Init(storage)
	}

	if err := jwt.Init(authfunc.Unauthorized); err != nil {
		logrus.Fatalf("init jwt failed: %v", err)
	}
	if err := middleware.InitSentinel(config.ConfigInfo.Sentinel.QPS); err != nil {
		hlog.Warnf("init sentinel failed, flow control disabled: %v", err)
	}

	return func() {
		if p != nil {
			if err := p.Close(); err != nil {
				hlog.Warnf("close rabbitmq producer: %v", err)
			}
		}
	}
}

func main() {
	cleanup := Init()
	defer cleanup()

	_, closer := jaeger.InitJaeger(config.ConfigInfo.Jaeger.ServiceName)
	defer closer.Close()
	if config.ConfigInfo.Server.Pprof {
		pprof.Load(config.ConfigInfo.Server.PprofAddr)
	}

	r := server.New(
		server.WithHostPorts(config.ConfigInfo.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(config.ConfigInfo.Server.MaxRequestBody),
	)

	// 配置 CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigInfo.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 错误处理
	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			utils.SendResponse(c, errno.ServiceErr.WithMessage("Internal server error"), nil)
		})))
	r.Use(middleware.Tracing(), middleware.Sentinel())

	router.Register(r)
	r.Spin()
}
