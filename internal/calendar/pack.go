package calendar

import "sort"

// overlaps reports whether two items' [start, end) intervals intersect.
// Both grid and shift packing share this predicate; an event ending at
// 21:00 does not conflict with one starting at 21:00.
func overlaps(a, b CalendarItem) bool {
	return TimeToMinutes(a.StartTime) < TimeToMinutes(b.EndTime) &&
		TimeToMinutes(b.StartTime) < TimeToMinutes(a.EndTime)
}

// packFirstFit places each item, in the given order, into the leftmost
// column whose members it does not overlap, opening a new column when
// none accepts it. It returns one column index per item plus the columns
// themselves, so callers can run further passes over the placement.
func packFirstFit(items []CalendarItem) (indices []int, columns [][]CalendarItem) {
	indices = make([]int, len(items))
	for i, item := range items {
		placed := false
		for col := range columns {
			free := true
			for _, existing := range columns[col] {
				if overlaps(existing, item) {
					free = false
					break
				}
			}
			if free {
				columns[col] = append(columns[col], item)
				indices[i] = col
				placed = true
				break
			}
		}
		if !placed {
			columns = append(columns, []CalendarItem{item})
			indices[i] = len(columns) - 1
		}
	}
	return indices, columns
}

// sortForGrid orders items by ascending start time, with artists winning
// ties against other categories so they land in the leftmost lanes.
func sortForGrid(items []CalendarItem) []CalendarItem {
	sorted := make([]CalendarItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		am, bm := TimeToMinutes(a.StartTime), TimeToMinutes(b.StartTime)
		if am != bm {
			return am < bm
		}
		return a.Category == CategoryArtist && b.Category != CategoryArtist
	})
	return sorted
}

// AssignColumns lays out one day's events on a grid of non-overlapping
// columns. Events are first-fit packed in start-time order, then each
// event's span is greedily extended into adjacent columns that hold no
// conflicting event, so cards widen into otherwise unused space. The
// returned Events slice is never nil, so an empty day serializes as an
// empty JSON array.
func AssignColumns(items []CalendarItem) Layout {
	if len(items) == 0 {
		return Layout{Events: []PositionedEvent{}}
	}

	sorted := sortForGrid(items)
	indices, columns := packFirstFit(sorted)

	events := make([]PositionedEvent, len(sorted))
	for i, item := range sorted {
		events[i] = PositionedEvent{CalendarItem: item, Column: indices[i], Span: 1}
	}

	// Span expansion: widen rightwards until the first conflict.
	for i := range events {
		for col := events[i].Column + 1; col < len(columns); col++ {
			blocked := false
			for _, occupant := range columns[col] {
				if overlaps(occupant, events[i].CalendarItem) {
					blocked = true
					break
				}
			}
			if blocked {
				break
			}
			events[i].Span++
		}
	}

	return Layout{Events: events, ColumnCount: len(columns)}
}
