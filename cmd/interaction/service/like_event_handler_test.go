package service

import (
	"context"
	"testing"

	"VidTube.com/pkg/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeCountRefresher(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := NewLikeService(ctx).ToggleLike(f.alice, "video", f.video)
	require.NoError(t, err)
	_, err = NewLikeService(ctx).ToggleLike(f.bob, "video", f.video)
	require.NoError(t, err)

	cache := newMapCache()
	h := NewLikeCountRefresher(cache)
	require.NoError(t, h.HandleLikeEvent(ctx, mq.NewLikeEvent(f.bob, "video", f.video, "added")))

	count, hit, err := cache.GetLikeCount(ctx, "video", f.video)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(2), count)

	require.NoError(t, h.HandleLikeEvent(ctx, mq.NewLikeEvent(f.bob, "playlist", f.video, "added")))
	_, hit, _ = cache.GetLikeCount(ctx, "playlist", f.video)
	assert.False(t, hit)
}
