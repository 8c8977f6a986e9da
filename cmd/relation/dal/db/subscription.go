package db

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/database"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/pkg/errors"
)

// subscriber 表示发起订阅的用户, channel 表示被订阅的频道(用户)

func IsSubscriptionExist(ctx context.Context, subscriberId, channelId int64) (bool, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberId, channelId).
		Count(&count).Error; err != nil {
		return false, errors.WithMessage(err, "count subscription failed")
	}
	return count > 0, nil
}

func CreateSubscription(ctx context.Context, subscriberId, channelId int64) error {
	if err := DB.WithContext(ctx).Create(&model.Subscription{
		SubscriptionId: utils.GenerateID(),
		SubscriberId:   subscriberId,
		ChannelId:      channelId,
	}).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return errno.ConflictErr.WithMessage("Subscription already exists")
		}
		return errors.WithMessage(err, "create subscription failed")
	}
	return nil
}

func DeleteSubscription(ctx context.Context, subscriberId, channelId int64) error {
	if err := DB.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberId, channelId).
		Delete(&model.Subscription{}).Error; err != nil {
		return errors.WithMessage(err, "delete subscription failed")
	}
	return nil
}

func IsUserExist(ctx context.Context, userId int64) (bool, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userId).Count(&count).Error; err != nil {
		return false, errors.WithMessage(err, "count user failed")
	}
	return count > 0, nil
}

// GetSubscribersPaged 订阅了该频道的用户
func GetSubscribersPaged(ctx context.Context, channelId int64, page utils.PageParam) ([]*model.User, error) {
	users := make([]*model.User, 0)
	if err := DB.WithContext(ctx).Model(&model.Subscription{}).
		Select("users.*").
		Joins("JOIN users ON users.user_id = subscriptions.subscriber_id").
		Where("subscriptions.channel_id = ?", channelId).
		Order("subscriptions.subscription_id ASC").
		Offset(page.Offset()).Limit(page.Limit()).
		Scan(&users).Error; err != nil {
		return nil, errors.WithMessage(err, "list subscribers failed")
	}
	return users, nil
}

// GetSubscribedChannelsPaged 该用户订阅的频道
func GetSubscribedChannelsPaged(ctx context.Context, subscriberId int64, page utils.PageParam) ([]*model.User, error) {
	users := make([]*model.User, 0)
	if err := DB.WithContext(ctx).Model(&model.Subscription{}).
		Select("users.*").
		Joins("JOIN users ON users.user_id = subscriptions.channel_id").
		Where("subscriptions.subscriber_id = ?", subscriberId).
		Order("subscriptions.subscription_id ASC").
		Offset(page.Offset()).Limit(page.Limit()).
		Scan(&users).Error; err != nil {
		return nil, errors.WithMessage(err, "list subscribed channels failed")
	}
	return users, nil
}

func GetSubscriberCount(ctx context.Context, channelId int64) (count int64, err error) {
	if err := DB.WithContext(ctx).Model(&model.Subscription{}).Where("channel_id = ?", channelId).Count(&count).Error; err != nil {
		return -1, errors.WithMessage(err, "count subscribers failed")
	}
	return count, nil
}
