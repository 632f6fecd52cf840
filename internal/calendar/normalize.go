package calendar

import "strings"

// SourceConfig declares how one source category's records map onto the
// normalized CalendarItem shape. Adding a new event source means adding a
// new config value here, not new branching in the normalizer.
type SourceConfig struct {
	Category          string
	IDField           string
	StartField        string
	EndField          string
	TitleField        string
	DescriptionFields []string // scanned in order, first non-empty wins
	DefaultColor      string
	ColorField        string
	LocationField     string
	IconField         string
}

// Source configs for the four spreadsheet tabs the festival publishes.
var (
	ArtistSource = SourceConfig{
		Category:          CategoryArtist,
		IDField:           "id",
		StartField:        "date_start",
		EndField:          "date_end",
		TitleField:        "name",
		DescriptionFields: []string{"bio", "description"},
		DefaultColor:      "#e76f51",
		ColorField:        "color",
		LocationField:     "scene",
		IconField:         "icon",
	}

	ActivitySource = SourceConfig{
		Category:          CategoryActivity,
		IDField:           "id",
		StartField:        "date_start",
		EndField:          "date_end",
		TitleField:        "title",
		DescriptionFields: []string{"description"},
		DefaultColor:      "#2a9d8f",
		ColorField:        "color",
		LocationField:     "location",
		IconField:         "icon",
	}

	MealSource = SourceConfig{
		Category:          CategoryMeal,
		IDField:           "id",
		StartField:        "date_start",
		EndField:          "date_end",
		TitleField:        "title",
		DescriptionFields: []string{"menu", "description"},
		DefaultColor:      "#e9c46a",
		LocationField:     "location",
	}

	PermSource = SourceConfig{
		Category:          CategoryPerm,
		IDField:           "id",
		StartField:        "date_start",
		EndField:          "date_end",
		TitleField:        "title",
		DescriptionFields: []string{"description"},
		DefaultColor:      "#264653",
		LocationField:     "location",
	}
)

// NewCalendarItem normalizes one raw record through a source config. The
// second return value is false when the record is unusable (missing or
// malformed start/end timestamp, empty title); such records are dropped,
// never defaulted.
func NewCalendarItem(rec Record, cfg SourceConfig) (CalendarItem, bool) {
	start := ExtractTime(rec[cfg.StartField])
	end := ExtractTime(rec[cfg.EndField])
	if start == "" || end == "" {
		return CalendarItem{}, false
	}

	title := strings.TrimSpace(rec[cfg.TitleField])
	if title == "" {
		return CalendarItem{}, false
	}

	var description string
	for _, field := range cfg.DescriptionFields {
		if v := strings.TrimSpace(rec[field]); v != "" {
			description = v
			break
		}
	}

	color := cfg.DefaultColor
	if cfg.ColorField != "" {
		if v := strings.TrimSpace(rec[cfg.ColorField]); v != "" {
			color = v
		}
	}

	item := CalendarItem{
		ID:          cfg.Category + "-" + rec[cfg.IDField],
		StartTime:   start,
		EndTime:     end,
		Title:       title,
		Description: description,
		Category:    cfg.Category,
		Color:       color,
		Metadata:    rec,
	}
	if cfg.LocationField != "" {
		item.Location = strings.TrimSpace(rec[cfg.LocationField])
	}
	if cfg.IconField != "" {
		item.Icon = strings.TrimSpace(rec[cfg.IconField])
	}
	return item, true
}
