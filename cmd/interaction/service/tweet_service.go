package service

import (
	"context"

	"VidTube.com/cmd/interaction/dal/db"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/guard"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type TweetService struct {
	ctx context.Context
}

func NewTweetService(ctx context.Context) *TweetService {
	return &TweetService{ctx: ctx}
}

func (service *TweetService) CreateTweet(actor int64, content string) (*model.Tweet, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	if !utils.ValidHandle(actor) {
		return nil, errno.ParamErr.WithMessage("Invalid user id")
	}
	tweet := &model.Tweet{
		TweetId: utils.GenerateID(),
		UserId:  actor,
		Content: content,
	}
	if err := db.CreateTweet(service.ctx, tweet); err != nil {
		return nil, storeErr(service.ctx, "create tweet", err)
	}
	return tweet, nil
}

func (service *TweetService) loadOwned(tweetId, actor int64) (*model.Tweet, error) {
	if !utils.ValidHandle(tweetId) {
		return nil, errno.ParamErr.WithMessage("Invalid tweet id")
	}
	tweet, err := db.GetTweetById(service.ctx, tweetId)
	if err != nil {
		return nil, storeErr(service.ctx, "get tweet", err)
	}
	if !guard.IsOwner(tweet, actor) {
		return nil, errno.ForbiddenErr.WithMessage("You can only modify your own tweets")
	}
	return tweet, nil
}

func (service *TweetService) UpdateTweet(tweetId, actor int64, content string) (*model.Tweet, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	tweet, err := service.loadOwned(tweetId, actor)
	if err != nil {
		return nil, err
	}
	if err := db.UpdateTweetContent(service.ctx, tweet, content); err != nil {
		return nil, storeErr(service.ctx, "update tweet", err)
	}
	tweet.Content = content
	return tweet, nil
}

func (service *TweetService) DeleteTweet(tweetId, actor int64) (*model.Tweet, error) {
	tweet, err := service.loadOwned(tweetId, actor)
	if err != nil {
		return nil, err
	}
	if err := db.DeleteTweet(service.ctx, tweet.TweetId); err != nil {
		return nil, storeErr(service.ctx, "delete tweet", err)
	}
	if components.Cache != nil {
		if err := components.Cache.Invalidate(service.ctx, constants.LikeKindTweet, tweet.TweetId); err != nil {
			hlog.CtxWarnf(service.ctx, "invalidate like count of tweet %d failed: %v", tweet.TweetId, err)
		}
	}
	return tweet, nil
}

func (service *TweetService) ListUserTweets(userId int64, page utils.PageParam) ([]*model.Tweet, error) {
	if !utils.ValidHandle(userId) {
		return nil, errno.ParamErr.WithMessage("Invalid user id")
	}
	tweets, err := db.GetUserTweetsPaged(service.ctx, userId, page)
	if err != nil {
		return nil, storeErr(service.ctx, "list tweets", err)
	}
	return tweets, nil
}
