package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CleanupQueueKey is the Redis list holding pending asset deletions.
	CleanupQueueKey = "media:cleanup"
	cleanupPopWait  = 5 * time.Second
)

// RedisCleanupQueue keeps pending deletions in a Redis list so they survive
// a restart. LPUSH on enqueue, BRPOP in the worker: first in, first out.
type RedisCleanupQueue struct {
	client *redis.Client
	key    string
}

func NewRedisCleanupQueue(client *redis.Client) *RedisCleanupQueue {
	return &RedisCleanupQueue{client: client, key: CleanupQueueKey}
}

func (q *RedisCleanupQueue) Push(ctx context.Context, job CleanupJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, data).Err()
}

func (q *RedisCleanupQueue) Pop(ctx context.Context) (CleanupJob, error) {
	for {
		res, err := q.client.BRPop(ctx, cleanupPopWait, q.key).Result()
		if err != nil {
			if ctx.Err() != nil {
				return CleanupJob{}, ctx.Err()
			}
			if errors.Is(err, redis.Nil) {
				continue
			}
			return CleanupJob{}, err
		}

		// res is [key, value]
		var job CleanupJob
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			return CleanupJob{}, fmt.Errorf("decoding cleanup job %q: %w", res[1], err)
		}
		return job, nil
	}
}

// Len reports how many jobs are waiting.
func (q *RedisCleanupQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
