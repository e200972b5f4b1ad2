package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"direct-chat-be/internal/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	roomsKeyPrefix = "chat:connections"
	roomsTTL       = 30 * time.Second
)

// RoomsCache is a cache-aside layer for the chat-connections listing, keyed
// per user. A nil *RoomsCache is a valid no-op cache, so callers never have
// to branch on Redis availability.
type RoomsCache struct {
	cli *redis.Client
}

func NewRoomsCache(cli *redis.Client) *RoomsCache {
	if cli == nil {
		return nil
	}
	return &RoomsCache{cli: cli}
}

func roomsKey(userId uuid.UUID) string {
	return fmt.Sprintf("%s:%s", roomsKeyPrefix, userId)
}

func (c *RoomsCache) Get(ctx context.Context, userId uuid.UUID) (*dto.ConnectionsResponse, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.cli.Get(ctx, roomsKey(userId)).Bytes()
	if err != nil {
		return nil, false
	}

	var res dto.ConnectionsResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false
	}
	return &res, true
}

func (c *RoomsCache) Set(ctx context.Context, userId uuid.UUID, res *dto.ConnectionsResponse) {
	if c == nil || res == nil {
		return
	}

	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	// Best effort; a failed SET only costs a future cache miss.
	_ = c.cli.Set(ctx, roomsKey(userId), raw, roomsTTL).Err()
}

func (c *RoomsCache) Invalidate(ctx context.Context, userIds ...uuid.UUID) {
	if c == nil || len(userIds) == 0 {
		return
	}

	keys := make([]string, len(userIds))
	for i, id := range userIds {
		keys[i] = roomsKey(id)
	}
	_ = c.cli.Del(ctx, keys...).Err()
}
