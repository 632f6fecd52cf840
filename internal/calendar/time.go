package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NightRolloverHour is the hour before which a time is considered part of
// the previous festival day. A set ending at 02:00 belongs to the night
// that started at 23:00 the evening before; festival days end when people
// go to sleep, not at midnight.
const NightRolloverHour = 7

const minutesPerDay = 24 * 60

// DefaultDayNames maps weekdays to the French day names used by the
// spreadsheet CMS.
var DefaultDayNames = map[time.Weekday]string{
	time.Sunday:    "Dimanche",
	time.Monday:    "Lundi",
	time.Tuesday:   "Mardi",
	time.Wednesday: "Mercredi",
	time.Thursday:  "Jeudi",
	time.Friday:    "Vendredi",
	time.Saturday:  "Samedi",
}

// ExtractTime returns the "HH:MM" portion of a "DD/MM/YYYY HH:MM[:SS]"
// timestamp, truncating seconds. It returns "" for empty or malformed
// input; callers must treat "" as "drop this record".
func ExtractTime(s string) string {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return ""
	}

	parts := strings.Split(fields[1], ":")
	if len(parts) != 2 && len(parts) != 3 {
		return ""
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return ""
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return ""
	}

	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ExtractDayName parses the "DD/MM/YYYY" portion of a timestamp and maps
// its weekday through the given table (DefaultDayNames when nil). It
// returns "" when the date portion is unparseable.
func ExtractDayName(s string, dayNames map[time.Weekday]string) string {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return ""
	}

	date, err := time.Parse("02/01/2006", fields[0])
	if err != nil {
		return ""
	}

	if dayNames == nil {
		dayNames = DefaultDayNames
	}
	return dayNames[date.Weekday()]
}

// TimeToMinutes converts an "HH:MM" string into a comparable minute
// offset. Hours before NightRolloverHour are shifted by a full day so
// that late-night times sort after the evening that preceded them.
// Malformed input yields -1; items reaching this function have already
// been validated by normalization, so -1 only shows up on misuse.
func TimeToMinutes(hhmm string) int {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return -1
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return -1
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return -1
	}

	total := hour*60 + minute
	if hour < NightRolloverHour {
		total += minutesPerDay
	}
	return total
}
