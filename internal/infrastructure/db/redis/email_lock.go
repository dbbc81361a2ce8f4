package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	lockTTL       = 10 * time.Second
	lockRetryWait = 25 * time.Millisecond
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// EmailLock serialises check-then-create sequences across instances.
// Key format: lock:auth:email:<normalized_email>
type EmailLock struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewEmailLock creates an EmailLock wrapping the given Redis client.
func NewEmailLock(client *redis.Client, log zerolog.Logger) *EmailLock {
	return &EmailLock{client: client, ttl: lockTTL, log: log}
}

// Lock polls SET NX until the key is acquired or ctx is done. The lock
// expires after lockTTL if the holder never releases it.
func (l *EmailLock) Lock(ctx context.Context, email string) (func(), error) {
	token, err := newLockToken()
	if err != nil {
		return nil, err
	}
	key := l.key(email)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if ok {
			return func() {
				// Release on a fresh context so a cancelled request still frees the key.
				rctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
				defer cancel()
				err := releaseScript.Run(rctx, l.client, []string{key}, token).Err()
				if err != nil && !errors.Is(err, redis.Nil) {
					l.log.Warn().Err(err).Str("key", key).Msg("failed to release email lock")
				}
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryWait):
		}
	}
}

func (l *EmailLock) key(email string) string {
	return fmt.Sprintf("lock:auth:email:%s", email)
}

func newLockToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("lock token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
