package service

import (
	"context"
	"sync"
	"testing"

	"VidTube.com/cmd/model"
	"VidTube.com/cmd/relation/dal/db"
	"VidTube.com/pkg/database/dbtest"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/lock"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/toggle"
	"VidTube.com/pkg/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordProducer struct {
	mu     sync.Mutex
	events []*mq.SubscriptionEvent
}

func (p *recordProducer) PublishLikeEvent(ctx context.Context, event *mq.LikeEvent) error {
	return nil
}

func (p *recordProducer) PublishSubscriptionEvent(ctx context.Context, event *mq.SubscriptionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordProducer) PublishCommentEvent(ctx context.Context, event *mq.CommentEvent) error {
	return nil
}

func setupUsers(t *testing.T, n int) []int64 {
	gdb := dbtest.New(t)
	db.Init(gdb)
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		id := utils.GenerateID()
		require.NoError(t, gdb.Create(&model.User{UserId: id, UserName: "user" + string(rune('a'+i))}).Error)
		ids = append(ids, id)
	}
	return ids
}

func TestToggleSubscription(t *testing.T) {
	users := setupUsers(t, 2)
	p := &recordProducer{}
	Init(toggle.NewEngine(lock.NewKeyedLocker()), p)
	defer Init(nil, nil)

	svc := NewRelationService(context.Background())
	viewer, channel := users[0], users[1]

	action, err := svc.ToggleSubscription(viewer, channel)
	require.NoError(t, err)
	assert.Equal(t, toggle.Added, action)

	subs, err := svc.ListSubscribers(channel, utils.NewPageParam(1, 10))
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, viewer, subs[0].UserId)

	channels, err := svc.ListSubscribedChannels(viewer, utils.NewPageParam(1, 10))
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, channel, channels[0].UserId)

	action, err = svc.ToggleSubscription(viewer, channel)
	require.NoError(t, err)
	assert.Equal(t, toggle.Removed, action)

	subs, err = svc.ListSubscribers(channel, utils.NewPageParam(1, 10))
	require.NoError(t, err)
	assert.Empty(t, subs)

	require.Len(t, p.events, 2)
	assert.Equal(t, "added", p.events[0].ActionType)
	assert.Equal(t, "removed", p.events[1].ActionType)
}

func TestToggleSubscriptionErrors(t *testing.T) {
	users := setupUsers(t, 1)
	Init(toggle.NewEngine(lock.NewKeyedLocker()), nil)
	svc := NewRelationService(context.Background())

	_, err := svc.ToggleSubscription(users[0], users[0])
	assert.True(t, errors.Is(err, errno.ParamErr))

	_, err = svc.ToggleSubscription(users[0], utils.GenerateID())
	assert.True(t, errors.Is(err, errno.NotFoundErr))

	_, err = svc.ToggleSubscription(-1, users[0])
	assert.True(t, errors.Is(err, errno.ParamErr))

	_, err = svc.ListSubscribers(0, utils.NewPageParam(1, 10))
	assert.True(t, errors.Is(err, errno.ParamErr))

	_, err = svc.GetSubscriberCount(utils.GenerateID())
	assert.True(t, errors.Is(err, errno.NotFoundErr))
	_, err = svc.GetSubscriberCount(0)
	assert.True(t, errors.Is(err, errno.ParamErr))
}

func TestConcurrentToggleSubscription(t *testing.T) {
	users := setupUsers(t, 2)
	Init(toggle.NewEngine(lock.NewKeyedLocker()), nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := NewRelationService(context.Background()).ToggleSubscription(users[0], users[1])
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := NewRelationService(context.Background()).GetSubscriberCount(users[1])
	require.NoError(t, err)
	assert.Equal(t, int64(0), count, "偶数次切换后不应存在订阅")
}

func TestListSubscribersPagination(t *testing.T) {
	users := setupUsers(t, 13)
	Init(toggle.NewEngine(lock.NewKeyedLocker()), nil)
	svc := NewRelationService(context.Background())
	channel := users[0]
	for _, u := range users[1:] {
		_, err := svc.ToggleSubscription(u, channel)
		require.NoError(t, err)
	}

	page, err := svc.ListSubscribers(channel, utils.NewPageParam(2, 5))
	require.NoError(t, err)
	require.Len(t, page, 5)
	for i, u := range page {
		assert.Equal(t, users[1+5+i], u.UserId)
	}
}

func TestEnsureUser(t *testing.T) {
	users := setupUsers(t, 1)
	svc := NewRelationService(context.Background())
	ctx := context.Background()

	// 已有记录不变
	require.NoError(t, svc.EnsureUser(users[0]))

	fresh := utils.GenerateID()
	exist, err := db.IsUserExist(ctx, fresh)
	require.NoError(t, err)
	assert.False(t, exist)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, NewRelationService(ctx).EnsureUser(fresh))
		}()
	}
	wg.Wait()
	exist, err = db.IsUserExist(ctx, fresh)
	require.NoError(t, err)
	assert.True(t, exist)

	err = svc.EnsureUser(0)
	assert.True(t, errors.Is(err, errno.ParamErr))
}
