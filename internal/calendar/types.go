package calendar

// Record is a single row from a published-spreadsheet CSV, keyed by the
// header of its column. Fields not promoted into a CalendarItem stay
// reachable through Metadata.
type Record map[string]string

// Category names for the known event sources.
const (
	CategoryArtist   = "artist"
	CategoryActivity = "activity"
	CategoryMeal     = "meal"
	CategoryPerm     = "perm"
)

// CalendarItem is the normalized shape every event source is mapped into.
// StartTime and EndTime are always present and parseable; records that
// fail normalization are dropped before an item is ever constructed.
type CalendarItem struct {
	ID          string `json:"id"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	Location    string `json:"location,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Metadata    Record `json:"metadata"`
}

// PositionedEvent is a CalendarItem with its visual lane assignment.
// SubColumn, SubColumnCount and ColumnOffset are only populated by the
// pole-grouped shift layout; the plain grid layout leaves them zero.
type PositionedEvent struct {
	CalendarItem
	Column         int `json:"column"`
	Span           int `json:"span"`
	SubColumn      int `json:"subColumn,omitempty"`
	SubColumnCount int `json:"subColumnCount,omitempty"`
	ColumnOffset   int `json:"columnOffset,omitempty"`
}

// EventsByDay maps a logical festival day name to its ordered event list.
type EventsByDay map[string][]CalendarItem

// Layout is the output of the grid packing pass for one day.
type Layout struct {
	Events      []PositionedEvent `json:"events"`
	ColumnCount int               `json:"columnCount"`
}

// ShiftLayout is the output of the pole-grouped shift packing pass.
// Poles keeps the alphabetical lane order; SubColumnCounts and
// ColumnOffsets let a renderer place each pole's block on a single flat
// axis of TotalUnitColumns units without re-deriving the grouping.
type ShiftLayout struct {
	Events           []PositionedEvent `json:"events"`
	ColumnCount      int               `json:"columnCount"`
	Poles            []string          `json:"poles"`
	SubColumnCounts  map[string]int    `json:"subColumnCounts"`
	ColumnOffsets    map[string]int    `json:"columnOffsets"`
	TotalUnitColumns int               `json:"totalUnitColumns"`
}
