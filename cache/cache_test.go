package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Cache = Noop{}
	gen, err := c.Generation(ctx, GroupPosts)
	assert.NoError(t, err)
	assert.NoError(t, c.Set(ctx, GroupPosts, gen, "k", []byte("v")))
	_, err = c.Get(ctx, GroupPosts, gen, "k")
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, c.Invalidate(ctx, GroupPosts, GroupMenu))
	assert.NoError(t, c.Close())
}

func TestNewRedisRequiresURL(t *testing.T) {
	_, err := NewRedis(context.Background(), RedisOptions{})
	assert.Error(t, err)

	_, err = NewRedis(context.Background(), RedisOptions{URL: "not a url"})
	assert.Error(t, err)
}

func TestRedisGroupKey(t *testing.T) {
	c := &Redis{prefix: "lagougah:"}
	assert.Equal(t, "lagougah:public:posts:gen", c.genKey(GroupPosts))
	assert.Equal(t, "lagougah:public:posts:3", c.groupKey(GroupPosts, 3))
	assert.NotEqual(t, c.groupKey(GroupPosts, 3), c.groupKey(GroupPosts, 4))
}

func TestRedisTTLSeconds(t *testing.T) {
	tests := []struct {
		ttl  time.Duration
		want int64
	}{
		{5 * time.Minute, 300},
		{1500 * time.Millisecond, 1},
		{100 * time.Millisecond, 1},
	}
	for _, tt := range tests {
		t.Run(tt.ttl.String(), func(t *testing.T) {
			c := &Redis{ttl: tt.ttl}
			assert.Equal(t, tt.want, c.ttlSeconds())
		})
	}
}
