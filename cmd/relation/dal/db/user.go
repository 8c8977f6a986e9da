package db

import (
	"context"
	"fmt"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/database"
	"github.com/pkg/errors"
)

// EnsureUser 用户第一次携带有效token访问时补建users记录, 账号体系由外部服务维护
func EnsureUser(ctx context.Context, userId int64) error {
	exist, err := IsUserExist(ctx, userId)
	if err != nil {
		return err
	}
	if exist {
		return nil
	}
	if err := DB.WithContext(ctx).Create(&model.User{
		UserId:   userId,
		UserName: fmt.Sprintf("user_%d", userId),
	}).Error; err != nil {
		// 并发的首次请求已经建好了
		if database.IsDuplicateKey(err) {
			return nil
		}
		return errors.Wrapf(err, "EnsureUser failed, user_id: %d", userId)
	}
	return nil
}
