package lock

import (
	"context"
	"sync"
	"time"
)

var (
	lockMap sync.Map
)

const pollInterval = 10 * time.Millisecond

// WithDelay runs safeCode while holding the in-process lock for key. It waits
// up to wait for the lock and reports success=false if the lock could not be
// taken in time or ctx was cancelled.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	isTimeout := time.After(wait)
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			break
		}
		select {
		case <-isTimeout:
			return false, nil
		case <-ctx.Done():
			return false, nil
		case <-time.After(pollInterval):
		}
	}
	defer lockMap.Delete(key)
	return true, safeCode()
}

// CandidateKey is the lock key guarding read-modify-write of one candidate.
func CandidateKey(candidateID string) string {
	return "candidate:" + candidateID
}
