package guard

import "VidTube.com/pkg/utils"

// Owned 可被某个用户拥有的资源(评论、动态、播放列表、视频)
type Owned interface {
	OwnerId() int64
}

// IsOwner 判断actor是否为资源的拥有者。资源为空或ID不合法时一律返回false, 不会报错
func IsOwner(res Owned, actor int64) bool {
	if res == nil {
		return false
	}
	return utils.SameHandle(res.OwnerId(), actor)
}
