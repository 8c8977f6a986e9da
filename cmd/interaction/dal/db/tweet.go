package db

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func CreateTweet(ctx context.Context, tweet *model.Tweet) error {
	if err := DB.WithContext(ctx).Create(tweet).Error; err != nil {
		return errors.WithMessage(err, "create tweet failed")
	}
	return nil
}

func GetTweetById(ctx context.Context, tweetId int64) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := DB.WithContext(ctx).Where("tweet_id = ?", tweetId).First(&tweet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Tweet not found")
		}
		return nil, errors.WithMessage(err, "get tweet failed")
	}
	return &tweet, nil
}

func UpdateTweetContent(ctx context.Context, tweet *model.Tweet, content string) error {
	if err := DB.WithContext(ctx).Model(tweet).Update("content", content).Error; err != nil {
		return errors.WithMessage(err, "update tweet failed")
	}
	return nil
}

func DeleteTweet(ctx context.Context, tweetId int64) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", constants.LikeKindTweet, tweetId).
			Delete(&model.Like{}).Error; err != nil {
			return errors.WithMessage(err, "delete tweet likes failed")
		}
		if err := tx.Where("tweet_id = ?", tweetId).Delete(&model.Tweet{}).Error; err != nil {
			return errors.WithMessage(err, "delete tweet failed")
		}
		return nil
	})
}

func GetUserTweetsPaged(ctx context.Context, userId int64, page utils.PageParam) ([]*model.Tweet, error) {
	tweets := make([]*model.Tweet, 0)
	if err := DB.WithContext(ctx).Where("user_id = ?", userId).
		Order("tweet_id ASC").
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&tweets).Error; err != nil {
		return nil, errors.WithMessage(err, "list tweets failed")
	}
	return tweets, nil
}
