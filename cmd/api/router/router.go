package router

import (
	"context"

	interaction "VidTube.com/cmd/api/handlers/interaction"
	relation "VidTube.com/cmd/api/handlers/relation"
	video "VidTube.com/cmd/api/handlers/video"
	"VidTube.com/cmd/api/router/authfunc"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	hutils "github.com/cloudwego/hertz/pkg/common/utils"
)

// Register 公开的GET接口不需要token, 其余接口都经过 authfunc.Auth
func Register(r *server.Hertz) {
	r.GET("/ping", func(ctx context.Context, c *app.RequestContext) {
		utils.SendResponse(c, nil, hutils.H{"message": "pong"})
	})

	public := r.Group("/api/v1")
	auth := r.Group("/api/v1", authfunc.Auth()...)

	// 视频
	public.GET("/videos", video.ListVideos)
	public.GET("/videos/:videoId", video.GetVideo)
	auth.POST("/videos", video.PublishVideo)
	auth.PATCH("/videos/:videoId", video.UpdateVideo)
	auth.DELETE("/videos/:videoId", video.DeleteVideo)
	auth.PATCH("/videos/:videoId/publish", video.TogglePublishStatus)

	// 评论
	public.GET("/videos/:videoId/comments", interaction.ListVideoComments)
	public.GET("/videos/:videoId/comments/count", interaction.GetCommentCount)
	auth.POST("/videos/:videoId/comments", interaction.CreateComment)
	auth.PATCH("/comments/:commentId", interaction.UpdateComment)
	auth.DELETE("/comments/:commentId", interaction.DeleteComment)

	// 点赞
	auth.GET("/likes/videos", interaction.ListLikedVideos)
	auth.POST("/likes/:kind/:targetId", interaction.ToggleLike)
	public.GET("/likes/:kind/:targetId/count", interaction.GetLikeCount)

	// 订阅
	auth.POST("/subscriptions/:channelId", relation.ToggleSubscription)
	public.GET("/subscriptions/:channelId/subscribers", relation.ListSubscribers)
	public.GET("/subscriptions/:channelId/count", relation.GetSubscriberCount)
	public.GET("/subscriptions/user/:subscriberId", relation.ListSubscribedChannels)

	// 播放列表
	auth.POST("/playlists", video.CreatePlaylist)
	public.GET("/playlists/user/:userId", video.ListUserPlaylists)
	public.GET("/playlists/:playlistId", video.GetPlaylist)
	auth.PATCH("/playlists/:playlistId", video.UpdatePlaylist)
	auth.DELETE("/playlists/:playlistId", video.DeletePlaylist)
	auth.POST("/playlists/:playlistId/videos/:videoId", video.AddVideoToPlaylist)
	auth.DELETE("/playlists/:playlistId/videos/:videoId", video.RemoveVideoFromPlaylist)

	// 动态
	auth.POST("/tweets", interaction.CreateTweet)
	public.GET("/tweets/user/:userId", interaction.ListUserTweets)
	auth.PATCH("/tweets/:tweetId", interaction.UpdateTweet)
	auth.DELETE("/tweets/:tweetId", interaction.DeleteTweet)

	// 频道
	auth.GET("/channel/stats", video.GetChannelStats)
	auth.GET("/channel/videos", video.GetChannelVideos)
}
