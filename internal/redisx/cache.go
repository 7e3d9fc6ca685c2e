package redisx

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct{ R *redis.Client }

func NewClient(addr string) *Client {
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 0})
	return &Client{R: rdb}
}

// Popular groups via sorted set, bumped on every posted message.
const popularKey = "popular_groups"

func (c *Client) IncPopular(ctx context.Context, groupID uint) {
	_ = c.R.ZIncrBy(ctx, popularKey, 1, strconv.FormatUint(uint64(groupID), 10)).Err()
	_ = c.R.Expire(ctx, popularKey, 24*time.Hour).Err()
}

func (c *Client) TopPopular(ctx context.Context, n int64) ([]uint, error) {
	items, err := c.R.ZRevRange(ctx, popularKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]uint, 0, len(items))
	for _, s := range items {
		if v, e := strconv.ParseUint(s, 10, 64); e == nil {
			out = append(out, uint(v))
		}
	}
	return out, nil
}
