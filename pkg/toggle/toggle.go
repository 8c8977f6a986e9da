package toggle

import (
	"context"

	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/lock"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type Action string

const (
	Added   Action = "added"
	Removed Action = "removed"
)

// Relation 一条可切换的多对多关系(点赞、订阅)。
// Create 在唯一索引冲突时必须返回 errno.ConflictErr
type Relation interface {
	Key() string
	Exists(ctx context.Context) (bool, error)
	TargetExists(ctx context.Context) (bool, error)
	Create(ctx context.Context) error
	Remove(ctx context.Context) error
}

type Engine struct {
	locker lock.Locker
}

func NewEngine(locker lock.Locker) *Engine {
	if locker == nil {
		locker = lock.NewKeyedLocker()
	}
	return &Engine{locker: locker}
}

// Toggle 关系存在则删除, 不存在则在目标存在时创建。
// 同一对(actor,target)的切换在锁内串行执行, 唯一索引兜底保证最多一条记录
func (e *Engine) Toggle(ctx context.Context, actor, target int64, rel Relation) (Action, error) {
	if !utils.ValidHandle(actor) || !utils.ValidHandle(target) {
		return "", errno.ParamErr.WithMessage("Invalid user or target id")
	}

	unlock, err := e.locker.Lock(ctx, rel.Key())
	if err != nil {
		return "", err
	}
	defer unlock()

	exist, err := rel.Exists(ctx)
	if err != nil {
		hlog.CtxErrorf(ctx, "check relation %s failed: %v", rel.Key(), errors.Cause(err))
		return "", errno.MysqlErr
	}
	if exist {
		if err := rel.Remove(ctx); err != nil {
			hlog.CtxErrorf(ctx, "remove relation %s failed: %v", rel.Key(), errors.Cause(err))
			return "", errno.MysqlErr
		}
		return Removed, nil
	}

	ok, err := rel.TargetExists(ctx)
	if err != nil {
		hlog.CtxErrorf(ctx, "check target of %s failed: %v", rel.Key(), errors.Cause(err))
		return "", errno.MysqlErr
	}
	if !ok {
		return "", errno.NotFoundErr.WithMessage("Target not found")
	}

	if err := rel.Create(ctx); err != nil {
		// 其他实例已经写入了同一条关系, 结果与调用方期望的一致
		if errors.Is(err, errno.ConflictErr) {
			hlog.CtxWarnf(ctx, "relation %s already created by a concurrent request", rel.Key())
			return Added, nil
		}
		hlog.CtxErrorf(ctx, "create relation %s failed: %v", rel.Key(), errors.Cause(err))
		return "", errno.MysqlErr
	}
	return Added, nil
}
