package service

import (
	"context"

	"VidTube.com/cmd/interaction/dal/db"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/guard"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type CommentService struct {
	ctx context.Context
}

func NewCommentService(ctx context.Context) *CommentService {
	return &CommentService{ctx: ctx}
}

func (service *CommentService) CreateComment(videoId, actor int64, content string) (*model.Comment, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	if !utils.ValidHandle(videoId) || !utils.ValidHandle(actor) {
		return nil, errno.ParamErr.WithMessage("Invalid video or user id")
	}
	exist, err := db.IsVideoExist(service.ctx, videoId)
	if err != nil {
		return nil, storeErr(service.ctx, "check video", err)
	}
	if !exist {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}

	comment := &model.Comment{
		CommentId: utils.GenerateID(),
		VideoId:   videoId,
		UserId:    actor,
		Content:   content,
	}
	if err := db.CreateComment(service.ctx, comment); err != nil {
		return nil, storeErr(service.ctx, "create comment", err)
	}
	service.publish("create", comment)
	return comment, nil
}

// loadOwned 取出评论并校验操作者是否为作者
func (service *CommentService) loadOwned(commentId, actor int64) (*model.Comment, error) {
	if !utils.ValidHandle(commentId) {
		return nil, errno.ParamErr.WithMessage("Invalid comment id")
	}
	comment, err := db.GetCommentById(service.ctx, commentId)
	if err != nil {
		return nil, storeErr(service.ctx, "get comment", err)
	}
	if !guard.IsOwner(comment, actor) {
		return nil, errno.ForbiddenErr.WithMessage("You can only modify your own comments")
	}
	return comment, nil
}

func (service *CommentService) UpdateComment(commentId, actor int64, content string) (*model.Comment, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	comment, err := service.loadOwned(commentId, actor)
	if err != nil {
		return nil, err
	}
	if err := db.UpdateCommentContent(service.ctx, comment, content); err != nil {
		return nil, storeErr(service.ctx, "update comment", err)
	}
	comment.Content = content
	service.publish("update", comment)
	return comment, nil
}

func (service *CommentService) DeleteComment(commentId, actor int64) (*model.Comment, error) {
	comment, err := service.loadOwned(commentId, actor)
	if err != nil {
		return nil, err
	}
	if err := db.DeleteComment(service.ctx, comment.CommentId); err != nil {
		return nil, storeErr(service.ctx, "delete comment", err)
	}
	if components.Cache != nil {
		if err := components.Cache.Invalidate(service.ctx, constants.LikeKindComment, comment.CommentId); err != nil {
			hlog.CtxWarnf(service.ctx, "invalidate like count of comment %d failed: %v", comment.CommentId, err)
		}
	}
	service.publish("delete", comment)
	return comment, nil
}

func (service *CommentService) ListVideoComments(videoId int64, page utils.PageParam) ([]*model.Comment, error) {
	if !utils.ValidHandle(videoId) {
		return nil, errno.ParamErr.WithMessage("Invalid video id")
	}
	exist, err := db.IsVideoExist(service.ctx, videoId)
	if err != nil {
		return nil, storeErr(service.ctx, "check video", err)
	}
	if !exist {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}
	comments, err := db.GetVideoCommentsPaged(service.ctx, videoId, page)
	if err != nil {
		return nil, storeErr(service.ctx, "list comments", err)
	}
	return comments, nil
}

func (service *CommentService) GetCommentCount(videoId int64) (int64, error) {
	if !utils.ValidHandle(videoId) {
		return 0, errno.ParamErr.WithMessage("Invalid video id")
	}
	exist, err := db.IsVideoExist(service.ctx, videoId)
	if err != nil {
		return 0, storeErr(service.ctx, "check video", err)
	}
	if !exist {
		return 0, errno.NotFoundErr.WithMessage("Video not found")
	}
	count, err := db.GetVideoCommentCount(service.ctx, videoId)
	if err != nil {
		return 0, storeErr(service.ctx, "count comments", err)
	}
	return count, nil
}

func (service *CommentService) publish(typ string, comment *model.Comment) {
	if components.Producer == nil {
		return
	}
	event := mq.NewCommentEvent(typ, comment.CommentId, comment.UserId, comment.VideoId)
	if err := components.Producer.PublishCommentEvent(service.ctx, event); err != nil {
		hlog.CtxErrorf(service.ctx, "publish comment event %s failed: %v", event.EventID, err)
	}
}
