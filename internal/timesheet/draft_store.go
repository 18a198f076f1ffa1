package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// draftTTL keeps abandoned drafts from piling up. Two weeks covers a
// user who starts a sheet on Friday and finishes after a holiday.
const draftTTL = 14 * 24 * time.Hour

// DraftStore holds unsaved grids in redis, one hash per user-week.
// Field layout is "<project_id>|<date>" mapping to the raw text the
// user typed, so even unparsable input survives a reload.
type DraftStore struct {
	rdb *redis.Client
}

func NewDraftStore(rdb *redis.Client) *DraftStore {
	return &DraftStore{rdb: rdb}
}

func draftKey(userID string, year, week int) string {
	return fmt.Sprintf("timesheet:draft:%s:%d:%d", userID, year, week)
}

func (s *DraftStore) Save(ctx context.Context, userID string, year, week int, cells map[string]string) error {
	if s.rdb == nil {
		return nil
	}
	key := draftKey(userID, year, week)

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	if len(cells) > 0 {
		fields := make(map[string]interface{}, len(cells))
		for field, hours := range cells {
			fields[field] = hours
		}
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, draftTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *DraftStore) Load(ctx context.Context, userID string, year, week int) (map[string]string, error) {
	if s.rdb == nil {
		return nil, nil
	}
	cells, err := s.rdb.HGetAll(ctx, draftKey(userID, year, week)).Result()
	if err != nil {
		return nil, err
	}
	return cells, nil
}

func (s *DraftStore) Clear(ctx context.Context, userID string, year, week int) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, draftKey(userID, year, week)).Err()
}
