package mining

import (
	"context"
	"sync/atomic"
	"time"
)

// HashCounter counts hashes tried by any number of goroutines. A nil
// HashCounter discards increments.
type HashCounter struct {
	count uint64
}

// Increment adds a single hash to the counter
func (c *HashCounter) Increment() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.count, 1)
}

// Load returns the number of hashes counted so far
func (c *HashCounter) Load() uint64 {
	if c == nil {
		return 0
	}
	return atomic.LoadUint64(&c.count)
}

// take returns the count and resets it to zero
func (c *HashCounter) take() uint64 {
	if c == nil {
		return 0
	}
	return atomic.SwapUint64(&c.count, 0)
}

// LogHashRate logs the rate at which counter grows every interval, until ctx is done.
// The counter is reset on every sample. A non-positive interval disables the log.
func LogHashRate(ctx context.Context, counter *HashCounter, interval time.Duration) {
	if interval <= 0 {
		log.Warnf("Hash rate logging disabled: invalid interval %s", interval)
		return
	}
	spawn("LogHashRate", func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		lastCheck := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case currentTime := <-ticker.C:
				kiloHashesTried := float64(counter.take()) / 1000.0
				hashRate := kiloHashesTried / currentTime.Sub(lastCheck).Seconds()
				log.Infof("Current hash rate is %.2f Khash/s", hashRate)
				lastCheck = currentTime
			}
		}
	})
}
