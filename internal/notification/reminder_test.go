package notification

import (
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"festival-companion-backend/config"
	"festival-companion-backend/internal/calendar"
	"festival-companion-backend/internal/sheet"
)

type fakeSnapshotProvider struct {
	snap *sheet.Snapshot
}

func (f *fakeSnapshotProvider) Snapshot() *sheet.Snapshot { return f.snap }

func reminderItem(id, category, title, start string) calendar.CalendarItem {
	return calendar.CalendarItem{
		ID:        id,
		Category:  category,
		Title:     title,
		StartTime: calendar.ExtractTime(start),
		Metadata:  calendar.Record{"date_start": start},
	}
}

func TestReminder_Tick(t *testing.T) {
	now := time.Date(2026, 7, 24, 20, 50, 0, 0, time.Local)

	provider := &fakeSnapshotProvider{
		snap: &sheet.Snapshot{
			Schedule: calendar.EventsByDay{
				"Vendredi": {
					reminderItem("artist-1", "artist", "Fanfare du Nord", "24/07/2026 21:00:00"),
					reminderItem("artist-2", "artist", "Beaucoup Plus Tard", "24/07/2026 23:30:00"),
				},
			},
			Shifts: calendar.EventsByDay{
				"Vendredi": {
					reminderItem("perm-1", "perm", "Service bar", "24/07/2026 21:00:00"),
				},
			},
		},
	}

	pool := NewWorkerPool(4, &mockStore{}, &webpush.Options{})
	r := NewReminder(config.ReminderConfig{Enabled: true, DefaultLeadMinutes: 15}, provider, pool)
	r.now = func() time.Time { return now }

	r.Tick()

	var dispatched []string
	for len(pool.Jobs()) > 0 {
		dispatched = append(dispatched, (<-pool.Jobs()).EventID)
	}
	assert.ElementsMatch(t, []string{"artist-1", "perm-1"}, dispatched)

	// A later tick re-dispatches the still-upcoming events, so
	// subscribers whose lead window opens late are not left out. The
	// worker pool dedups actual deliveries per endpoint.
	r.now = func() time.Time { return now.Add(5 * time.Minute) }
	r.Tick()

	dispatched = dispatched[:0]
	for len(pool.Jobs()) > 0 {
		dispatched = append(dispatched, (<-pool.Jobs()).EventID)
	}
	require.ElementsMatch(t, []string{"artist-1", "perm-1"}, dispatched)
}

func TestReminder_Tick_NilSnapshot(t *testing.T) {
	pool := NewWorkerPool(1, &mockStore{}, &webpush.Options{})
	r := NewReminder(config.ReminderConfig{Enabled: true, DefaultLeadMinutes: 15}, &fakeSnapshotProvider{}, pool)

	r.Tick() // must not panic before the first sync
	assert.Empty(t, pool.Jobs())
}
