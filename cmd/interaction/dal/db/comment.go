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

func CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := DB.WithContext(ctx).Create(comment).Error; err != nil {
		return errors.WithMessage(err, "create comment failed")
	}
	return nil
}

func GetCommentById(ctx context.Context, commentId int64) (*model.Comment, error) {
	var comment model.Comment
	if err := DB.WithContext(ctx).Where("comment_id = ?", commentId).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Comment not found")
		}
		return nil, errors.WithMessage(err, "get comment failed")
	}
	return &comment, nil
}

func UpdateCommentContent(ctx context.Context, comment *model.Comment, content string) error {
	if err := DB.WithContext(ctx).Model(comment).Update("content", content).Error; err != nil {
		return errors.WithMessage(err, "update comment failed")
	}
	return nil
}

// DeleteComment 同时删除该评论收到的点赞
func DeleteComment(ctx context.Context, commentId int64) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", constants.LikeKindComment, commentId).
			Delete(&model.Like{}).Error; err != nil {
			return errors.WithMessage(err, "delete comment likes failed")
		}
		if err := tx.Where("comment_id = ?", commentId).Delete(&model.Comment{}).Error; err != nil {
			return errors.WithMessage(err, "delete comment failed")
		}
		return nil
	})
}

func GetVideoCommentsPaged(ctx context.Context, videoId int64, page utils.PageParam) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	if err := DB.WithContext(ctx).Where("video_id = ?", videoId).
		Order("comment_id ASC").
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&comments).Error; err != nil {
		return nil, errors.WithMessage(err, "list comments failed")
	}
	return comments, nil
}

func GetVideoCommentCount(ctx context.Context, videoId int64) (int64, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoId).Count(&count).Error; err != nil {
		return 0, errors.WithMessage(err, "count comments failed")
	}
	return count, nil
}
