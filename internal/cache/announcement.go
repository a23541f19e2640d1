package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// announcementKey holds the current nearly-sold-out announcement. It is
// written only by the out-of-band refresh job; reads are pass-through.
const announcementKey = "announcements:recent"

// GetAnnouncement returns the cached announcement, or "" when none is set.
func (c *Cache) GetAnnouncement(ctx context.Context) (string, error) {
	msg, err := c.client.Get(ctx, announcementKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return msg, nil
}

// SetAnnouncement stores the announcement with no expiry; the refresh job
// owns the key's lifecycle.
func (c *Cache) SetAnnouncement(ctx context.Context, message string) error {
	if err := c.client.Set(ctx, announcementKey, message, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// ClearAnnouncement removes the announcement entry.
func (c *Cache) ClearAnnouncement(ctx context.Context) error {
	if err := c.client.Del(ctx, announcementKey).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
