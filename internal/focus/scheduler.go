package focus

import (
	"sync"
	"time"
)

// Scheduler runs fn every d until the returned stop func is called. Stop
// must be safe to call more than once and from inside fn.
type Scheduler interface {
	Every(d time.Duration, fn func()) (stop func())
}

// TickerScheduler is a Scheduler backed by time.Ticker.
type TickerScheduler struct{}

func (TickerScheduler) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
