package sheet

import (
	"time"

	"festival-companion-backend/internal/calendar"
)

// Snapshot is one immutable view of the spreadsheet data, rebuilt on
// every successful sync. Consumers must not mutate it.
type Snapshot struct {
	FetchedAt time.Time

	// Records holds the raw parsed rows per source category.
	Records map[string][]calendar.Record

	// Days lists the festival day names present, in festival order.
	Days []string

	// Schedule is the merged artist/activity/meal calendar per day.
	Schedule calendar.EventsByDay

	// Shifts holds the volunteer shifts per day, kept separate because
	// they are laid out by the pole-grouped packing instead.
	Shifts calendar.EventsByDay
}

// Timestamp layouts used by the spreadsheet.
var startLayouts = []string{"02/01/2006 15:04:05", "02/01/2006 15:04"}

// StartsAt resolves an item's absolute start time from its raw record.
// Items always carry a parseable date_start once normalized, but the
// second return value still guards against hand-built test items.
func StartsAt(item calendar.CalendarItem, loc *time.Location) (time.Time, bool) {
	raw := item.Metadata["date_start"]
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EventsStartingBetween returns every scheduled event (shifts included)
// whose absolute start falls in [from, to).
func (s *Snapshot) EventsStartingBetween(from, to time.Time) []calendar.CalendarItem {
	if s == nil {
		return nil
	}
	var out []calendar.CalendarItem
	collect := func(byDay calendar.EventsByDay) {
		for _, items := range byDay {
			for _, item := range items {
				start, ok := StartsAt(item, from.Location())
				if !ok {
					continue
				}
				if !start.Before(from) && start.Before(to) {
					out = append(out, item)
				}
			}
		}
	}
	collect(s.Schedule)
	collect(s.Shifts)
	return out
}
