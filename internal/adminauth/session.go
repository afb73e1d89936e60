package adminauth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is the validity window of an elevated session.
const DefaultTTL = 2 * time.Hour

const (
	activeKeyPrefix  = "admin:elevated:"
	grantedKeySuffix = ":granted_at"
)

// ElevatedSession is a temporary admin-capability grant layered on top
// of an already-authenticated principal.
type ElevatedSession struct {
	Active    bool
	GrantedAt time.Time
}

// Store persists the elevated-session flag and grant timestamp in
// Redis, scoped by console-session id. Expiry is enforced lazily on
// read; there is no background eviction.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewStore constructs a Store. A non-positive ttl falls back to DefaultTTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl, now: time.Now}
}

// TTL exposes the configured elevation lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Save records an active grant stamped at the current time.
func (s *Store) Save(ctx context.Context, sid string) error {
	if sid == "" {
		return errors.New("adminauth: console session id required")
	}
	granted := s.now().UnixMilli()
	// Housekeeping expiry only: twice the TTL bounds abandoned keys,
	// the authoritative check happens on Read.
	keep := 2 * s.ttl
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, activeKey(sid), "true", keep)
	pipe.Set(ctx, grantedKey(sid), strconv.FormatInt(granted, 10), keep)
	_, err := pipe.Exec(ctx)
	return err
}

// Read loads the stored grant. It returns nil when no grant exists and
// clears the grant as a side effect the first time it is read after
// the TTL has elapsed.
func (s *Store) Read(ctx context.Context, sid string) (*ElevatedSession, error) {
	if sid == "" {
		return nil, nil
	}
	active, err := s.client.Get(ctx, activeKey(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	grantedRaw, err := s.client.Get(ctx, grantedKey(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Half-written grant, treat as absent.
			return nil, s.Clear(ctx, sid)
		}
		return nil, err
	}
	grantedMillis, parseErr := strconv.ParseInt(grantedRaw, 10, 64)
	if active != "true" || parseErr != nil {
		return nil, s.Clear(ctx, sid)
	}
	grantedAt := time.UnixMilli(grantedMillis)
	if s.now().Sub(grantedAt) >= s.ttl {
		if err := s.Clear(ctx, sid); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &ElevatedSession{Active: true, GrantedAt: grantedAt}, nil
}

// Clear removes the grant unconditionally. Idempotent.
func (s *Store) Clear(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return s.client.Del(ctx, activeKey(sid), grantedKey(sid)).Err()
}

func activeKey(sid string) string {
	return activeKeyPrefix + sid
}

func grantedKey(sid string) string {
	return activeKeyPrefix + sid + grantedKeySuffix
}
