package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mockdesk/mockdesk-backend/internal/config"
	"github.com/mockdesk/mockdesk-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// StaleEvent is published on a mock's event channel after every mutating call
// so open editor tabs know to refetch.
type StaleEvent struct {
	Event  string `json:"event"`
	MockID int    `json:"mock_id"`
}

const EventEditorStale = "editor_stale"

// RedisEditorCache stores assembled editor views in Redis and fans out stale
// events over pub/sub. Cache failures are logged and swallowed: the database
// remains the source of truth and a missed cache write only costs a rebuild.
type RedisEditorCache struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedisEditorCache creates a new RedisEditorCache.
func NewRedisEditorCache(rdb *redis.Client, log zerolog.Logger) *RedisEditorCache {
	return &RedisEditorCache{
		rdb: rdb,
		log: log.With().Str("component", "editor_cache").Logger(),
	}
}

// Get retrieves a cached editor view. The second return is false on miss.
func (c *RedisEditorCache) Get(ctx context.Context, mockID int) (*model.EditorView, bool) {
	data, err := c.rdb.Get(ctx, config.CacheKey.MockEditorKey(mockID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Int("mock_id", mockID).Msg("Editor cache read failed")
		}
		return nil, false
	}

	var view model.EditorView
	if err := json.Unmarshal(data, &view); err != nil {
		c.log.Warn().Err(err).Int("mock_id", mockID).Msg("Editor cache payload corrupt")
		return nil, false
	}
	return &view, true
}

// Set stores an editor view under the mock's cache key.
func (c *RedisEditorCache) Set(ctx context.Context, mockID int, view *model.EditorView) {
	data, err := json.Marshal(view)
	if err != nil {
		c.log.Warn().Err(err).Int("mock_id", mockID).Msg("Editor view marshal failed")
		return
	}
	if err := c.rdb.Set(ctx, config.CacheKey.MockEditorKey(mockID), data, 0).Err(); err != nil {
		c.log.Warn().Err(err).Int("mock_id", mockID).Msg("Editor cache write failed")
	}
}

// Invalidate drops the cached view and publishes a stale event on the mock's
// channel. Both happen in one pipeline round trip.
func (c *RedisEditorCache) Invalidate(ctx context.Context, mockID int) error {
	event, err := json.Marshal(StaleEvent{Event: EventEditorStale, MockID: mockID})
	if err != nil {
		return fmt.Errorf("marshal stale event: %w", err)
	}

	pipe := c.rdb.Pipeline()
	pipe.Del(ctx, config.CacheKey.MockEditorKey(mockID))
	pipe.Publish(ctx, config.CacheKey.MockEventsChannel(mockID), event)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("invalidate editor view: %w", err)
	}

	c.log.Debug().Int("mock_id", mockID).Msg("Editor view invalidated")
	return nil
}
