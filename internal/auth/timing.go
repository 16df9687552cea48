package auth

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"time"
)

// FailureDelay slows down rejected session sign-ins so that unknown and
// malformed tokens take about the same time
type FailureDelay struct {
	Base   time.Duration
	Jitter time.Duration
}

// cryptoRandN returns a secure random duration in [0, max)
func cryptoRandN(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0
	}
	return time.Duration(binary.BigEndian.Uint64(b[:]) % uint64(max))
}

// Wait sleeps Base plus a random share of Jitter when success is false.
// It returns early if ctx is done.
func (d FailureDelay) Wait(ctx context.Context, success bool) {
	if success {
		return
	}
	total := d.Base + cryptoRandN(d.Jitter)
	if total <= 0 {
		return
	}

	timer := time.NewTimer(total)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
