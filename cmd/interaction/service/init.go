package service

import (
	"context"

	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/toggle"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// LikeCountCache 点赞数缓存, 为nil时直接查库
type LikeCountCache interface {
	GetLikeCount(ctx context.Context, kind string, targetId int64) (int64, bool, error)
	SetLikeCount(ctx context.Context, kind string, targetId, count int64) error
	Invalidate(ctx context.Context, kind string, targetId int64) error
}

type Components struct {
	Engine   *toggle.Engine
	Cache    LikeCountCache
	Producer mq.MessageProducer
}

var components = Components{Engine: toggle.NewEngine(nil)}

// Init 启动时注入锁、缓存和消息生产者
func Init(c Components) {
	if c.Engine == nil {
		c.Engine = toggle.NewEngine(nil)
	}
	components = c
}

// storeErr 保留业务错误码, 其余的存储错误记录日志后统一返回 MysqlErr
func storeErr(ctx context.Context, op string, err error) error {
	var e errno.ErrNo
	if errors.As(err, &e) {
		return e
	}
	hlog.CtxErrorf(ctx, "%s failed: %v", op, errors.Cause(err))
	return errno.MysqlErr
}
