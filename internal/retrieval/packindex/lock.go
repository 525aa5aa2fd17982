package packindex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 200 * time.Millisecond

// acquireLock takes an exclusive lock on path, retrying until timeout.
func acquireLock(ctx context.Context, path string, timeout time.Duration) (func(), error) {
	l := flock.New(path)
	lctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	locked, err := l.TryLockContext(lctx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w (lock: %s)", ErrLocked, path)
		}
		return nil, fmt.Errorf("cannot acquire index lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w (lock: %s)", ErrLocked, path)
	}
	return func() { _ = l.Unlock() }, nil
}
