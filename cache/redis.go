package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// setEntry stores one field and arms the hash TTL only when none is set, so a
// busy generation still expires. TTL + EXPIRE keeps it working on Redis < 7,
// which lacks EXPIRE NX.
var setEntry = redis.NewScript(`
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
if redis.call('TTL', KEYS[1]) < 0 then
	redis.call('EXPIRE', KEYS[1], ARGV[3])
end
return 1
`)

// Redis stores each group generation as a hash. The generation counter lives
// next to it under "<prefix>public:<group>:gen".
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

type RedisOptions struct {
	URL            string
	Prefix         string
	TTL            time.Duration
	ConnectTimeout time.Duration
}

func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	if opts.URL == "" {
		return nil, errors.New("redis URL is required")
	}
	ro, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}
	if opts.ConnectTimeout > 0 {
		ro.DialTimeout = opts.ConnectTimeout
	}
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	client := redis.NewClient(ro)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &Redis{client: client, prefix: opts.Prefix, ttl: opts.TTL}, nil
}

func (c *Redis) genKey(group string) string {
	return c.prefix + "public:" + group + ":gen"
}

func (c *Redis) groupKey(group string, gen int64) string {
	return c.prefix + "public:" + group + ":" + strconv.FormatInt(gen, 10)
}

func (c *Redis) ttlSeconds() int64 {
	if s := int64(c.ttl / time.Second); s > 0 {
		return s
	}
	return 1
}

func (c *Redis) Generation(ctx context.Context, group string) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey(group)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *Redis) Get(ctx context.Context, group string, gen int64, key string) ([]byte, error) {
	val, err := c.client.HGet(ctx, c.groupKey(group, gen), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return val, err
}

func (c *Redis) Set(ctx context.Context, group string, gen int64, key string, value []byte) error {
	keys := []string{c.groupKey(group, gen)}
	return setEntry.Run(ctx, c.client, keys, key, value, c.ttlSeconds()).Err()
}

// Invalidate bumps the generation of each group and drops the hash of the
// generation it replaces.
func (c *Redis) Invalidate(ctx context.Context, groups ...string) error {
	if len(groups) == 0 {
		return nil
	}
	pipe := c.client.TxPipeline()
	incrs := make([]*redis.IntCmd, len(groups))
	for i, g := range groups {
		incrs[i] = pipe.Incr(ctx, c.genKey(g))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	stale := make([]string, len(groups))
	for i, g := range groups {
		stale[i] = c.groupKey(g, incrs[i].Val()-1)
	}
	return c.client.Del(ctx, stale...).Err()
}

func (c *Redis) Close() error {
	return c.client.Close()
}
