package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/muhammadheryan/telecom-distribution/model"
)

const (
	sessionPrefix      = "session:"
	statsPrefix        = "stats:"
	preferencePrefix   = "pref:"
	notificationPrefix = "notifications:"

	// MaxNotifications bounds each user's notification list.
	MaxNotifications = 50
	notificationTTL  = 30 * 24 * time.Hour
)

// Repository defines methods for interacting with Redis key-values
type Repository interface {
	SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (uint64, error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetStats(ctx context.Context, userID uint64) ([]byte, error)
	SetStats(ctx context.Context, userID uint64, payload []byte, ttl time.Duration) error
	InvalidateStats(ctx context.Context, userIDs ...uint64) error
	InvalidateAllStats(ctx context.Context) error
	GetPreferences(ctx context.Context, userID uint64) (map[string]string, error)
	SetPreferences(ctx context.Context, userID uint64, prefs map[string]string) error
	PushNotification(ctx context.Context, n *model.Notification) error
	ListNotifications(ctx context.Context, userID uint64, limit int64) ([]model.Notification, error)
}

type redis struct {
	client *goredis.Client
}

// NewRepository returns a Redis Repository implementation
func NewRepository(client *goredis.Client) Repository {
	return &redis{client: client}
}

func StatsKey(userID uint64) string {
	return fmt.Sprintf("%s%d", statsPrefix, userID)
}

func (r *redis) del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// SetSession stores a session with userID and TTL
func (r *redis) SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error {
	return r.client.Set(ctx, sessionPrefix+sessionID, userID, ttl).Err()
}

// GetSession retrieves userID from session
func (r *redis) GetSession(ctx context.Context, sessionID string) (uint64, error) {
	return r.client.Get(ctx, sessionPrefix+sessionID).Uint64()
}

func (r *redis) DeleteSession(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionPrefix+sessionID).Err()
}

// GetStats returns the cached stats payload, or nil on a miss.
func (r *redis) GetStats(ctx context.Context, userID uint64) ([]byte, error) {
	val, err := r.client.Get(ctx, StatsKey(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	return val, err
}

func (r *redis) SetStats(ctx context.Context, userID uint64, payload []byte, ttl time.Duration) error {
	return r.client.Set(ctx, StatsKey(userID), payload, ttl).Err()
}

func (r *redis) InvalidateStats(ctx context.Context, userIDs ...uint64) error {
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, StatsKey(id))
	}
	return r.del(ctx, keys...)
}

// InvalidateAllStats drops every cached stats entry; used after a global stock reset.
func (r *redis) InvalidateAllStats(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, statsPrefix+"*", 100).Iterator()
	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := r.del(ctx, batch...); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return r.del(ctx, batch...)
}

func (r *redis) GetPreferences(ctx context.Context, userID uint64) (map[string]string, error) {
	return r.client.HGetAll(ctx, fmt.Sprintf("%s%d", preferencePrefix, userID)).Result()
}

func (r *redis) SetPreferences(ctx context.Context, userID uint64, prefs map[string]string) error {
	if len(prefs) == 0 {
		return nil
	}
	values := make(map[string]interface{}, len(prefs))
	for k, v := range prefs {
		values[k] = v
	}
	return r.client.HSet(ctx, fmt.Sprintf("%s%d", preferencePrefix, userID), values).Err()
}

// PushNotification prepends to the user's list and trims it to MaxNotifications.
func (r *redis) PushNotification(ctx context.Context, n *model.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s%d", notificationPrefix, n.UserID)

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, body)
	pipe.LTrim(ctx, key, 0, MaxNotifications-1)
	pipe.Expire(ctx, key, notificationTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redis) ListNotifications(ctx context.Context, userID uint64, limit int64) ([]model.Notification, error) {
	if limit <= 0 || limit > MaxNotifications {
		limit = MaxNotifications
	}
	raw, err := r.client.LRange(ctx, fmt.Sprintf("%s%d", notificationPrefix, userID), 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	res := make([]model.Notification, 0, len(raw))
	for _, item := range raw {
		var n model.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		res = append(res, n)
	}
	return res, nil
}
