package services

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
)

// errNotRestored marks an inconclusive rehydration attempt (records absent
// or partial) so the retry loop tries again.
var errNotRestored = errors.New("session not restored")

// Bootstrapper rehydrates the session on startup. The persisted records may
// not be readable yet when the program starts (a prior run's write and this
// run's read are not guaranteed ordered), so it retries a bounded number of
// times with a fixed delay before settling on Anonymous.
//
// The exhaustion path never clears persisted data: absence after retries
// means "not yet decided", not "confirmed logged out". Only Logout or an
// observed 401 may destroy a session.
type Bootstrapper struct {
	store    *SessionStore
	attempts int
	delay    time.Duration
}

// NewBootstrapper configures a bootstrapper with the total number of read
// attempts (minimum 1) and the delay between them.
func NewBootstrapper(store *SessionStore, attempts int, delay time.Duration) *Bootstrapper {
	if attempts < 1 {
		attempts = 1
	}
	return &Bootstrapper{store: store, attempts: attempts, delay: delay}
}

// Run drives the retry loop and leaves the store Authenticated or
// Anonymous. It returns an error only for context cancellation or a
// storage failure on the final attempt; an ordinary "nothing persisted"
// outcome is not an error.
func (b *Bootstrapper) Run(ctx context.Context) error {
	backoff := retry.WithMaxRetries(uint64(b.attempts-1), retry.NewConstant(b.delay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		restored, err := b.store.rehydrate(ctx)
		if err != nil {
			// Storage hiccups are as transient as missing records.
			return retry.RetryableError(err)
		}
		if !restored {
			return retry.RetryableError(errNotRestored)
		}
		return nil
	})

	if err != nil {
		b.store.markAnonymous()
		if errors.Is(err, errNotRestored) {
			return nil
		}
		return err
	}
	return nil
}
