// Package cache holds the optional read-through cache used by the public read
// surface. Entries live in groups so a write can drop every cached read of an
// entity at once.
//
// Every group carries a generation. Readers fetch the generation before
// loading from the store and write the result under that generation; an
// Invalidate in between bumps it, so a fill computed from old data lands in a
// generation nobody reads any more.
package cache

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when the entry is absent or expired.
var ErrMiss = errors.New("cache miss")

const (
	GroupPosts   = "posts"
	GroupBanners = "banners"
	GroupMenu    = "menu"
	GroupContact = "contact"
)

type Cache interface {
	Generation(ctx context.Context, group string) (int64, error)
	Get(ctx context.Context, group string, gen int64, key string) ([]byte, error)
	Set(ctx context.Context, group string, gen int64, key string, value []byte) error
	Invalidate(ctx context.Context, groups ...string) error
	Close() error
}

// Noop never stores anything. It is used when no Redis URL is configured.
type Noop struct{}

func (Noop) Generation(context.Context, string) (int64, error)          { return 0, nil }
func (Noop) Get(context.Context, string, int64, string) ([]byte, error) { return nil, ErrMiss }
func (Noop) Set(context.Context, string, int64, string, []byte) error   { return nil }
func (Noop) Invalidate(context.Context, ...string) error                { return nil }
func (Noop) Close() error                                               { return nil }
