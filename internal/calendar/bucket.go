package calendar

import (
	"log"
	"sort"
)

// GroupByDay normalizes a source's records and buckets the survivors by
// logical day name, preserving source order within each day. Records
// whose day cannot be resolved are dropped with a warning rather than
// collected under an empty-string bucket; when allowedDays is non-empty,
// records falling outside it are dropped the same way.
func GroupByDay(recs []Record, cfg SourceConfig, allowedDays []string) EventsByDay {
	allowed := make(map[string]bool, len(allowedDays))
	for _, d := range allowedDays {
		allowed[d] = true
	}

	out := make(EventsByDay)
	for _, rec := range recs {
		item, ok := NewCalendarItem(rec, cfg)
		if !ok {
			log.Printf("calendar: dropping malformed %s record %q", cfg.Category, rec[cfg.IDField])
			continue
		}

		day := ExtractDayName(rec[cfg.StartField], nil)
		if day == "" {
			log.Printf("calendar: dropping %s with unresolvable day: %s", cfg.Category, item.ID)
			continue
		}
		if len(allowed) > 0 && !allowed[day] {
			log.Printf("calendar: dropping %s outside festival days (%s): %s", cfg.Category, day, item.ID)
			continue
		}

		out[day] = append(out[day], item)
	}
	return out
}

// MergeEventsByDay unions independently normalized sources into one
// per-day mapping. Lists are concatenated in argument order; ids are
// namespaced by category so no dedup is needed.
func MergeEventsByDay(sources ...EventsByDay) EventsByDay {
	merged := make(EventsByDay)
	for _, src := range sources {
		for day, items := range src {
			merged[day] = append(merged[day], items...)
		}
	}
	return merged
}

// SortItems returns a copy of items stably sorted by ascending start
// time, using festival-night minute ordering.
func SortItems(items []CalendarItem) []CalendarItem {
	sorted := make([]CalendarItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return TimeToMinutes(sorted[i].StartTime) < TimeToMinutes(sorted[j].StartTime)
	})
	return sorted
}
