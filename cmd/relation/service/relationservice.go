package service

import (
	"context"
	"fmt"

	"VidTube.com/cmd/model"
	"VidTube.com/cmd/relation/dal/db"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/toggle"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

var (
	engine   = toggle.NewEngine(nil)
	producer mq.MessageProducer
)

// Init 注入切换引擎和消息生产者, producer 可以为nil
func Init(e *toggle.Engine, p mq.MessageProducer) {
	if e != nil {
		engine = e
	}
	producer = p
}

type RelationService struct {
	ctx context.Context
}

func NewRelationService(ctx context.Context) *RelationService {
	return &RelationService{ctx: ctx}
}

type subscriptionRelation struct {
	subscriberId int64
	channelId    int64
}

func (r *subscriptionRelation) Key() string {
	return fmt.Sprintf("subscription:%d:%d", r.subscriberId, r.channelId)
}

func (r *subscriptionRelation) Exists(ctx context.Context) (bool, error) {
	return db.IsSubscriptionExist(ctx, r.subscriberId, r.channelId)
}

func (r *subscriptionRelation) TargetExists(ctx context.Context) (bool, error) {
	return db.IsUserExist(ctx, r.channelId)
}

func (r *subscriptionRelation) Create(ctx context.Context) error {
	return db.CreateSubscription(ctx, r.subscriberId, r.channelId)
}

func (r *subscriptionRelation) Remove(ctx context.Context) error {
	return db.DeleteSubscription(ctx, r.subscriberId, r.channelId)
}

// ToggleSubscription 已订阅则取消, 未订阅则订阅, 不能订阅自己
func (service *RelationService) ToggleSubscription(subscriberId, channelId int64) (toggle.Action, error) {
	if utils.SameHandle(subscriberId, channelId) {
		return "", errno.RequestErr.WithMessage("You cannot subscribe to your own channel")
	}
	action, err := engine.Toggle(service.ctx, subscriberId, channelId, &subscriptionRelation{
		subscriberId: subscriberId,
		channelId:    channelId,
	})
	if err != nil {
		return "", err
	}
	if producer != nil {
		event := mq.NewSubscriptionEvent(subscriberId, channelId, string(action))
		if err := producer.PublishSubscriptionEvent(service.ctx, event); err != nil {
			hlog.CtxErrorf(service.ctx, "publish subscription event %s failed: %v", event.EventID, err)
		}
	}
	return action, nil
}

func (service *RelationService) ListSubscribers(channelId int64, page utils.PageParam) ([]*model.User, error) {
	if !utils.ValidHandle(channelId) {
		return nil, errno.ParamErr.WithMessage("Invalid channel id")
	}
	users, err := db.GetSubscribersPaged(service.ctx, channelId, page)
	if err != nil {
		hlog.CtxErrorf(service.ctx, "list subscribers of %d failed: %v", channelId, errors.Cause(err))
		return nil, errno.MysqlErr
	}
	return users, nil
}

func (service *RelationService) ListSubscribedChannels(subscriberId int64, page utils.PageParam) ([]*model.User, error) {
	if !utils.ValidHandle(subscriberId) {
		return nil, errno.ParamErr.WithMessage("Invalid subscriber id")
	}
	users, err := db.GetSubscribedChannelsPaged(service.ctx, subscriberId, page)
	if err != nil {
		hlog.CtxErrorf(service.ctx, "list subscribed channels of %d failed: %v", subscriberId, errors.Cause(err))
		return nil, errno.MysqlErr
	}
	return users, nil
}

func (service *RelationService) GetSubscriberCount(channelId int64) (int64, error) {
	if !utils.ValidHandle(channelId) {
		return 0, errno.ParamErr.WithMessage("Invalid channel id")
	}
	exist, err := db.IsUserExist(service.ctx, channelId)
	if err != nil {
		hlog.CtxErrorf(service.ctx, "check channel %d failed: %v", channelId, errors.Cause(err))
		return 0, errno.MysqlErr
	}
	if !exist {
		return 0, errno.NotFoundErr.WithMessage("Channel not found")
	}
	count, err := db.GetSubscriberCount(service.ctx, channelId)
	if err != nil {
		hlog.CtxErrorf(service.ctx, "count subscribers of %d failed: %v", channelId, errors.Cause(err))
		return 0, errno.MysqlErr
	}
	return count, nil
}

// EnsureUser 已认证的用户在本地没有记录时补建, 使其可以作为频道被订阅和统计
func (service *RelationService) EnsureUser(userId int64) error {
	if !utils.ValidHandle(userId) {
		return errno.ParamErr.WithMessage("Invalid user id")
	}
	if err := db.EnsureUser(service.ctx, userId); err != nil {
		hlog.CtxErrorf(service.ctx, "ensure user %d failed: %v", userId, errors.Cause(err))
		return errno.MysqlErr
	}
	return nil
}
