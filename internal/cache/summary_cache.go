package cache

import (
	"aptiprep/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SummaryCache handles Redis operations for per-user category summaries.
// Entries carry the summary revision and never move backwards.
type SummaryCache interface {
	Get(ctx context.Context, userID string) (model.CategorySummary, int64, error)
	Set(ctx context.Context, userID string, summary model.CategorySummary, revision int64) (bool, error)
	// Invalidate drops the cached summary and refuses later writes below revision
	Invalidate(ctx context.Context, userID string, revision int64) error
}

// setIfNewer writes rev/data only when the stored rev is lower (or absent)
var setIfNewer = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'rev')
if cur and tonumber(cur) >= tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'rev', ARGV[1], 'data', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

type summaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a new summary cache
func NewSummaryCache(client *redis.Client, ttl time.Duration) SummaryCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &summaryCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *summaryCache) key(userID string) string {
	return fmt.Sprintf("progress:%s:summary", userID)
}

func (c *summaryCache) Get(ctx context.Context, userID string) (model.CategorySummary, int64, error) {
	vals, err := c.client.HMGet(ctx, c.key(userID), "rev", "data").Result()
	if err != nil {
		return nil, 0, err
	}
	revStr, ok1 := vals[0].(string)
	data, ok2 := vals[1].(string)
	if !ok1 || !ok2 || data == "" {
		return nil, 0, nil
	}

	rev, err := strconv.ParseInt(revStr, 10, 64)
	if err != nil {
		return nil, 0, err
	}
	var summary model.CategorySummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, 0, err
	}
	return summary, rev, nil
}

func (c *summaryCache) Set(ctx context.Context, userID string, summary model.CategorySummary, revision int64) (bool, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return false, err
	}
	n, err := setIfNewer.Run(ctx, c.client, []string{c.key(userID)}, revision, data, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (c *summaryCache) Invalidate(ctx context.Context, userID string, revision int64) error {
	return setIfNewer.Run(ctx, c.client, []string{c.key(userID)}, revision, "", c.ttl.Milliseconds()).Err()
}
