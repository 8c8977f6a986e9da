package service

import (
	"context"

	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/oss"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

var (
	storage   oss.MediaStorage
	likeCache LikeCountInvalidator
)

// LikeCountInvalidator 删除视频时清理点赞数缓存
type LikeCountInvalidator interface {
	Invalidate(ctx context.Context, kind string, targetId int64) error
}

// Init 注入媒体存储, 为nil时发布和更新封面会返回 OssErr
func Init(s oss.MediaStorage) {
	storage = s
}

func InitLikeCache(c LikeCountInvalidator) {
	likeCache = c
}

func storeErr(ctx context.Context, op string, err error) error {
	var e errno.ErrNo
	if errors.As(err, &e) {
		return e
	}
	hlog.CtxErrorf(ctx, "%s failed: %v", op, errors.Cause(err))
	return errno.MysqlErr
}
