package service

import (
	"context"
	"fmt"

	"VidTube.com/cmd/interaction/dal/db"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/toggle"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type LikeService struct {
	ctx context.Context
}

func NewLikeService(ctx context.Context) *LikeService {
	return &LikeService{ctx: ctx}
}

// likeRelation (user, kind, target) 三元组上的点赞关系
type likeRelation struct {
	userId   int64
	kind     string
	targetId int64
}

func (r *likeRelation) Key() string {
	return fmt.Sprintf("like:%s:%d:%d", r.kind, r.userId, r.targetId)
}

func (r *likeRelation) Exists(ctx context.Context) (bool, error) {
	return db.IsLikeExist(ctx, r.userId, r.kind, r.targetId)
}

func (r *likeRelation) TargetExists(ctx context.Context) (bool, error) {
	return db.IsTargetExist(ctx, r.kind, r.targetId)
}

func (r *likeRelation) Create(ctx context.Context) error {
	return db.CreateLike(ctx, &model.Like{
		LikeId:     utils.GenerateID(),
		UserId:     r.userId,
		TargetType: r.kind,
		TargetId:   r.targetId,
	})
}

func (r *likeRelation) Remove(ctx context.Context) error {
	return db.DeleteLike(ctx, r.userId, r.kind, r.targetId)
}

func ValidLikeKind(kind string) bool {
	switch kind {
	case constants.LikeKindVideo, constants.LikeKindComment, constants.LikeKindTweet:
		return true
	}
	return false
}

// ToggleLike 已点赞则取消, 未点赞则点赞
func (service *LikeService) ToggleLike(actor int64, kind string, targetId int64) (toggle.Action, error) {
	if !ValidLikeKind(kind) {
		return "", errno.ParamErr.WithMessage("Unsupported like target: " + kind)
	}
	action, err := components.Engine.Toggle(service.ctx, actor, targetId, &likeRelation{
		userId:   actor,
		kind:     kind,
		targetId: targetId,
	})
	if err != nil {
		return "", err
	}

	if components.Cache != nil {
		if err := components.Cache.Invalidate(service.ctx, kind, targetId); err != nil {
			hlog.CtxWarnf(service.ctx, "invalidate like count of %s %d failed: %v", kind, targetId, err)
		}
	}
	if components.Producer != nil {
		event := mq.NewLikeEvent(actor, kind, targetId, string(action))
		if err := components.Producer.PublishLikeEvent(service.ctx, event); err != nil {
			hlog.CtxErrorf(service.ctx, "publish like event %s failed: %v", event.EventID, err)
		}
	}
	return action, nil
}

// GetLikeCount 先读缓存, 未命中时回源并写回
func (service *LikeService) GetLikeCount(kind string, targetId int64) (int64, error) {
	if !ValidLikeKind(kind) {
		return 0, errno.ParamErr.WithMessage("Unsupported like target: " + kind)
	}
	if !utils.ValidHandle(targetId) {
		return 0, errno.ParamErr.WithMessage("Invalid target id")
	}
	if components.Cache != nil {
		count, hit, err := components.Cache.GetLikeCount(service.ctx, kind, targetId)
		if err != nil {
			hlog.CtxWarnf(service.ctx, "read like count cache failed: %v", err)
		} else if hit {
			return count, nil
		}
	}

	exist, err := db.IsTargetExist(service.ctx, kind, targetId)
	if err != nil {
		return 0, storeErr(service.ctx, "check like target", err)
	}
	if !exist {
		return 0, errno.NotFoundErr.WithMessage("Target not found")
	}
	count, err := db.GetLikeCount(service.ctx, kind, targetId)
	if err != nil {
		return 0, storeErr(service.ctx, "count likes", err)
	}
	if components.Cache != nil {
		if err := components.Cache.SetLikeCount(service.ctx, kind, targetId, count); err != nil {
			hlog.CtxWarnf(service.ctx, "write like count cache failed: %v", err)
		}
	}
	return count, nil
}

// ListLikedVideos 用户点赞过的视频
func (service *LikeService) ListLikedVideos(userId int64, page utils.PageParam) ([]*model.Video, error) {
	if !utils.ValidHandle(userId) {
		return nil, errno.ParamErr.WithMessage("Invalid user id")
	}
	videos, err := db.GetLikedVideosPaged(service.ctx, userId, page)
	if err != nil {
		return nil, storeErr(service.ctx, "list liked videos", err)
	}
	return videos, nil
}
