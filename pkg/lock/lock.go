package lock

import (
	"context"
	"sync"

	"VidTube.com/pkg/errno"
)

// Locker 以key为粒度串行化对同一对(用户,目标)关系的修改
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

var errBusy = errno.ConflictErr.WithMessage("Relation is being modified, please retry")

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

// KeyedLocker 进程内的分key互斥锁, 单实例部署或没有Redis时使用
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{locks: make(map[string]*keyedEntry)}
}

func (l *KeyedLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &keyedEntry{sem: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.sem
				l.release(key, e)
			})
		}, nil
	case <-ctx.Done():
		l.release(key, e)
		return nil, errBusy
	}
}

func (l *KeyedLocker) release(key string, e *keyedEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// size 当前仍被持有或等待的key数量
func (l *KeyedLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
