package notification

import (
	"context"
	"log"
	"time"

	"festival-companion-backend/config"
	"festival-companion-backend/internal/sheet"
)

// SnapshotProvider yields the current schedule snapshot; implemented by
// the sheet sync service.
type SnapshotProvider interface {
	Snapshot() *sheet.Snapshot
}

// Reminder periodically scans the schedule for events starting soon and
// dispatches reminder jobs to the worker pool.
type Reminder struct {
	cfg    config.ReminderConfig
	sheets SnapshotProvider
	pool   *WorkerPool
	now    func() time.Time
}

// NewReminder creates the reminder scheduler.
func NewReminder(cfg config.ReminderConfig, sheets SnapshotProvider, pool *WorkerPool) *Reminder {
	return &Reminder{
		cfg:    cfg,
		sheets: sheets,
		pool:   pool,
		now:    time.Now,
	}
}

// Run starts the scan loop.
func (r *Reminder) Run(ctx context.Context) {
	if !r.cfg.Enabled {
		log.Println("Reminder scheduler is disabled. Not starting.")
		return
	}
	log.Println("Starting reminder scheduler...")

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reminder scheduler shutting down.")
			return
		case <-ticker.C:
			r.Tick()
		}
	}
}

// Tick scans the snapshot once and dispatches a job for every event
// inside the default lead window. Events are re-dispatched on each tick
// while they remain upcoming; the worker pool remembers which
// (event, endpoint) pairs were already served, so a subscriber with a
// short lead preference still gets a reminder once the start is close
// enough, and nobody gets the same one twice.
func (r *Reminder) Tick() {
	snap := r.sheets.Snapshot()
	if snap == nil {
		return
	}

	now := r.now()
	window := time.Duration(r.cfg.DefaultLeadMinutes) * time.Minute
	for _, item := range snap.EventsStartingBetween(now, now.Add(window)) {
		startsAt, ok := sheet.StartsAt(item, now.Location())
		if !ok {
			continue
		}
		r.pool.Dispatch(Job{
			EventID:   item.ID,
			Category:  item.Category,
			Title:     item.Title,
			StartTime: item.StartTime,
			StartsAt:  startsAt,
		})
	}
}
