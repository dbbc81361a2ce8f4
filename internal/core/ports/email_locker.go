package ports

import "context"

// EmailLocker serialises check-then-create sequences for one normalized email.
// The returned func releases the lock.
type EmailLocker interface {
	Lock(ctx context.Context, email string) (func(), error)
}
