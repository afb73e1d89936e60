package adminauth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const actorKeyPrefix = "admin:actor:"

// ActorRegistry remembers which principal unlocked a console session,
// so audit records can name the actor. It lives outside the elevated
// session store on purpose: the store owns exactly the grant flag and
// timestamp, nothing else.
type ActorRegistry struct {
	client *redis.Client
	keep   time.Duration
}

// NewActorRegistry constructs an ActorRegistry. Entries are kept for
// twice the elevation TTL, mirroring the store's housekeeping window.
func NewActorRegistry(client *redis.Client, ttl time.Duration) *ActorRegistry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ActorRegistry{client: client, keep: 2 * ttl}
}

// Set records the acting principal for a console session.
func (r *ActorRegistry) Set(ctx context.Context, sid, principalID string) error {
	if sid == "" || principalID == "" {
		return errors.New("adminauth: sid and principal id required")
	}
	return r.client.Set(ctx, actorKeyPrefix+sid, principalID, r.keep).Err()
}

// Get returns the acting principal for a console session, or empty.
func (r *ActorRegistry) Get(ctx context.Context, sid string) (string, error) {
	id, err := r.client.Get(ctx, actorKeyPrefix+sid).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

// Clear forgets the actor for a console session. Idempotent.
func (r *ActorRegistry) Clear(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return r.client.Del(ctx, actorKeyPrefix+sid).Err()
}
