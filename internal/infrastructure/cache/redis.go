package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/venkat374/course-tracker-backend/internal/domain"
)

const listTTL = 5 * time.Minute

// RecordCache keeps each owner's record list in Redis for a short while.
// Every read path falls through to the database on a miss or a Redis error,
// so a broken cache only costs latency.
type RecordCache struct {
	client *redis.Client
}

func NewRecordCache(client *redis.Client) *RecordCache {
	return &RecordCache{client: client}
}

func (c *RecordCache) listKey(ownerID string) string {
	return "records:list:" + ownerID
}

func (c *RecordCache) GetList(ctx context.Context, ownerID string) ([]domain.TrackedCourseRecord, bool) {
	val, err := c.client.Get(ctx, c.listKey(ownerID)).Result()
	if err != nil {
		return nil, false
	}
	var records []domain.TrackedCourseRecord
	if json.Unmarshal([]byte(val), &records) != nil {
		return nil, false
	}
	return records, true
}

func (c *RecordCache) SetList(ctx context.Context, ownerID string, records []domain.TrackedCourseRecord) {
	if data, err := json.Marshal(records); err == nil {
		c.client.Set(ctx, c.listKey(ownerID), data, listTTL)
	}
}

// Invalidate drops the owner's cached list; called on every write so a stale
// list never outlives a mutation.
func (c *RecordCache) Invalidate(ctx context.Context, ownerID string) {
	c.client.Del(ctx, c.listKey(ownerID))
}
