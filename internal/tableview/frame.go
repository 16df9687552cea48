package tableview

import (
	"sync"
	"time"
)

// FrameScheduler runs a callback on the next animation frame. Requests
// made before the frame fires are coalesced into one call of the most
// recent callback.
type FrameScheduler interface {
	Request(fn func())
}

// ImmediateFrames runs every request synchronously. Used headless and in
// tests.
type ImmediateFrames struct{}

func (ImmediateFrames) Request(fn func()) { fn() }

// TickerFrames fires pending requests on a fixed frame interval
type TickerFrames struct {
	mu      sync.Mutex
	pending func()
	stopCh  chan struct{}
	once    sync.Once
}

// NewTickerFrames starts the frame loop. Call Stop to end it.
func NewTickerFrames(interval time.Duration) *TickerFrames {
	if interval <= 0 {
		interval = time.Second / 60
	}
	f := &TickerFrames{stopCh: make(chan struct{})}
	go f.loop(interval)
	return f
}

func (f *TickerFrames) Request(fn func()) {
	f.mu.Lock()
	f.pending = fn
	f.mu.Unlock()
}

func (f *TickerFrames) Stop() {
	f.once.Do(func() { close(f.stopCh) })
}

func (f *TickerFrames) loop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			f.mu.Lock()
			fn := f.pending
			f.pending = nil
			f.mu.Unlock()
			if fn != nil {
				fn()
			}
		case <-f.stopCh:
			return
		}
	}
}
