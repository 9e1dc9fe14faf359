package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

const streamActivity = "slackollama:activity"

// MustRedis parses a redis URL and returns a client or exits.
func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishActivity appends one handled-mention record to the activity stream.
func PublishActivity(ctx context.Context, rdb *redis.Client, payload map[string]interface{}) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamActivity,
		Values: payload,
	}).Result()
	return err
}
