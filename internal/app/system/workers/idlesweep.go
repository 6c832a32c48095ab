// internal/app/system/workers/idlesweep.go
package workers

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper drops entries that have been idle past their own threshold and
// reports how many it removed.
type Sweeper interface {
	Sweep(now time.Time) int
}

// SweeperFunc adapts a function to Sweeper.
type SweeperFunc func(now time.Time) int

func (f SweeperFunc) Sweep(now time.Time) int { return f(now) }

// IdleSweep is a background worker that periodically runs a set of sweepers,
// such as the console controller registry and the login limiter.
type IdleSweep struct {
	sweepers map[string]Sweeper
	log      *zap.Logger
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewIdleSweep creates a worker that runs each named sweeper every interval.
func NewIdleSweep(logger *zap.Logger, interval time.Duration, sweepers map[string]Sweeper) *IdleSweep {
	return &IdleSweep{
		sweepers: sweepers,
		log:      logger,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *IdleSweep) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("idle sweep worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish. Safe to call
// more than once.
func (w *IdleSweep) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("idle sweep worker stopped")
	})
}

// RunOnce runs every sweeper immediately.
func (w *IdleSweep) RunOnce() int {
	total := 0
	now := w.now()
	for name, s := range w.sweepers {
		n := s.Sweep(now)
		if n > 0 {
			w.log.Info("swept idle entries", zap.String("sweeper", name), zap.Int("count", n))
		}
		total += n
	}
	return total
}

func (w *IdleSweep) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}
