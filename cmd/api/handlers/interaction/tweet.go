package handlers

import (
	"context"

	"VidTube.com/cmd/interaction/service"
	"VidTube.com/pkg/jwt"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

func CreateTweet(ctx context.Context, c *app.RequestContext) {
	actor, err := jwt.ActorFrom(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	content, err := bindContent(c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	tweet, err := service.NewTweetService(ctx).CreateTweet(actor, content)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, tweet)
}

func ListUserTweets(ctx context.Context, c *app.RequestContext) {
	userId, err := utils.ParseHandle("user id", c.Param("userId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	page, err := bindPage(c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	tweets, err := service.NewTweetService(ctx).ListUserTweets(userId, page)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, tweets)
}

func UpdateTweet(ctx context.Context, c *app.RequestContext) {
	actor, err := jwt.ActorFrom(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	tweetId, err := utils.ParseHandle("tweet id", c.Param("tweetId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	content, err := bindContent(c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	tweet, err := service.NewTweetService(ctx).UpdateTweet(tweetId, actor, content)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, tweet)
}

func DeleteTweet(ctx context.Context, c *app.RequestContext) {
	actor, err := jwt.ActorFrom(ctx, c)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	tweetId, err := utils.ParseHandle("tweet id", c.Param("tweetId"))
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	tweet, err := service.NewTweetService(ctx).DeleteTweet(tweetId, actor)
	if err != nil {
		utils.SendResponse(c, err, nil)
		return
	}
	utils.SendResponse(c, nil, tweet)
}
