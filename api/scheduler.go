/*
scheduler.go - Automated overdue-flagging scheduler

PURPOSE:
  Periodically scans open work orders whose scheduled date has passed and
  flags them overdue. Flagging only: the scheduler never materializes
  occurrences or mutates plans, so the projection stays user-driven.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Uses a single UPDATE against the store, returns the affected count
  - Completed and cancelled orders are never touched

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewOverdueScheduler(store)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - store/sqlite/sqlite.go: MarkOverdue
  - maintenance/types.go: IsOverdueAt
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/maintenance-engine/planning"
	"github.com/warp/maintenance-engine/store/sqlite"
)

// OverdueScheduler flags overdue open work orders in the background.
type OverdueScheduler struct {
	Store         *sqlite.Store
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewOverdueScheduler creates a new scheduler.
func NewOverdueScheduler(store *sqlite.Store) *OverdueScheduler {
	return &OverdueScheduler{
		Store:         store,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (os *OverdueScheduler) Start() {
	os.mu.Lock()
	defer os.mu.Unlock()

	if !os.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	os.ticker = time.NewTicker(os.CheckInterval)
	os.wg.Add(1)

	go os.run()

	log.Printf("[Scheduler] Started with check interval: %v", os.CheckInterval)
}

// Stop stops the scheduler.
func (os *OverdueScheduler) Stop() {
	os.mu.Lock()
	defer os.mu.Unlock()

	if os.ticker != nil {
		os.ticker.Stop()
		close(os.stop)
		os.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

// RunNow performs an immediate overdue check outside the ticker cadence.
func (os *OverdueScheduler) RunNow() {
	os.checkOverdue()
}

func (os *OverdueScheduler) run() {
	defer os.wg.Done()

	// Run immediately on start
	os.checkOverdue()

	for {
		select {
		case <-os.ticker.C:
			os.checkOverdue()
		case <-os.stop:
			return
		}
	}
}

func (os *OverdueScheduler) checkOverdue() {
	ctx := context.Background()
	today := planning.Today()

	flagged, err := os.Store.MarkOverdue(ctx, today)
	if err != nil {
		log.Printf("[Scheduler] Overdue check failed: %v", err)
		return
	}
	if flagged > 0 {
		log.Printf("[Scheduler] Flagged %d work order(s) overdue as of %s", flagged, today)
	}
}
