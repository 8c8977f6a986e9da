package constants

import "time"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// 页码上限, 保证 offset 不会溢出 int32
	MaxPage      = 1000000

	// 评论和动态内容的最大长度(按字符计)
	MaxContentLength = 2000
	MaxTitleLength   = 200

	IdentityKey = "user_id"
)

// 点赞目标类型
const (
	LikeKindVideo   = "video"
	LikeKindComment = "comment"
	LikeKindTweet   = "tweet"
)

// Redis
const (
	LockKeyPrefix      = "vidtube:lock:"
	LikeCountKeyPrefix = "vidtube:like:count:"
	LikeCountTTL       = 10 * time.Minute
	LockExpiry         = 8 * time.Second
	LockTries          = 32
	LockRetryDelay     = 50 * time.Millisecond
)

const (
	VideoBucket   = "video"
	PictureBucket = "picture"
	MinioLocation = "us-east-1"
)

// 视频列表允许的排序字段
var VideoSortFields = map[string]string{
	"created_at": "created_at",
	"views":      "views",
	"duration":   "duration",
	"title":      "title",
}
