// Package lock provides in-process per-email critical sections.
package lock

import (
	"context"
	"hash/fnv"

	"github.com/storefront/auth-service/internal/core/ports"
)

const defaultShards = 64

// Sharded maps every key onto one of a fixed set of slots using FNV-32a, so
// two requests for the same email always contend on the same slot. Distinct
// emails may share a slot, which only costs throughput.
type Sharded struct {
	slots []chan struct{}
}

// NewSharded creates a Sharded lock with n slots.
// If n <= 0, defaultShards is used.
func NewSharded(n int) *Sharded {
	if n <= 0 {
		n = defaultShards
	}
	l := &Sharded{slots: make([]chan struct{}, n)}
	for i := range l.slots {
		l.slots[i] = make(chan struct{}, 1)
	}
	return l
}

var _ ports.EmailLocker = (*Sharded)(nil)

// Lock blocks until the slot for email is free or ctx is done.
func (l *Sharded) Lock(ctx context.Context, email string) (func(), error) {
	slot := l.slots[l.shardIndex(email)]
	select {
	case slot <- struct{}{}:
		return func() { <-slot }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Sharded) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(l.slots)))
}
