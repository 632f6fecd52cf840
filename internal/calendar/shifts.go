package calendar

import "sort"

// Metadata fields carried by volunteer-shift records.
const (
	poleField      = "pole"
	organizerField = "organizer"
)

func poleOf(item CalendarItem) string {
	if p := item.Metadata[poleField]; p != "" {
		return p
	}
	return item.Title
}

// AssignPoleColumns lays out volunteer shifts grouped by pole rather
// than purely by time overlap: each pole gets one contiguous block of
// sub-lanes regardless of whether its shifts overlap. Poles are ordered
// alphabetically so the grid does not reshuffle between data refreshes;
// within a pole, overlapping shifts are first-fit packed into sub-lanes.
func AssignPoleColumns(items []CalendarItem) ShiftLayout {
	layout := ShiftLayout{
		Events:          []PositionedEvent{},
		SubColumnCounts: make(map[string]int),
		ColumnOffsets:   make(map[string]int),
	}
	if len(items) == 0 {
		return layout
	}

	byPole := make(map[string][]CalendarItem)
	for _, item := range items {
		pole := poleOf(item)
		byPole[pole] = append(byPole[pole], item)
	}

	layout.Poles = make([]string, 0, len(byPole))
	for pole := range byPole {
		layout.Poles = append(layout.Poles, pole)
	}
	sort.Strings(layout.Poles)

	offset := 0
	for poleIdx, pole := range layout.Poles {
		shifts := SortItems(byPole[pole])
		indices, columns := packFirstFit(shifts)

		for i, shift := range shifts {
			layout.Events = append(layout.Events, PositionedEvent{
				CalendarItem:   shift,
				Column:         poleIdx,
				Span:           1,
				SubColumn:      indices[i],
				SubColumnCount: len(columns),
				ColumnOffset:   offset,
			})
		}

		layout.SubColumnCounts[pole] = len(columns)
		layout.ColumnOffsets[pole] = offset
		offset += len(columns)
	}

	layout.ColumnCount = len(layout.Poles)
	layout.TotalUnitColumns = offset
	return layout
}

// AssignUserColumns lays out shifts with one user's own assignments
// pinned to column 0 so a volunteer always finds them in the same lane.
// All other shifts are first-fit packed into the columns after it. The
// user is matched by display name against each shift's organizer field;
// when no shift matches (or user is empty) the plain grid layout is
// returned instead.
func AssignUserColumns(items []CalendarItem, user string) Layout {
	if len(items) == 0 {
		return Layout{Events: []PositionedEvent{}}
	}

	var mine, others []CalendarItem
	for _, item := range items {
		if user != "" && item.Metadata[organizerField] == user {
			mine = append(mine, item)
		} else {
			others = append(others, item)
		}
	}
	if len(mine) == 0 {
		return AssignColumns(items)
	}

	events := make([]PositionedEvent, 0, len(items))
	for _, item := range SortItems(mine) {
		events = append(events, PositionedEvent{CalendarItem: item, Column: 0, Span: 1})
	}

	sortedOthers := SortItems(others)
	indices, columns := packFirstFit(sortedOthers)
	for i, item := range sortedOthers {
		events = append(events, PositionedEvent{CalendarItem: item, Column: indices[i] + 1, Span: 1})
	}

	return Layout{Events: events, ColumnCount: len(columns) + 1}
}
