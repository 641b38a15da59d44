package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects the go-redis client used for job queues, the DLQ and the
// cron locks. Connectivity is verified up front so a bad REDIS_URL fails the
// boot instead of the first enqueue.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	opts.ClientName = "track-and-work"

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
