package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id, category, start, end string) CalendarItem {
	return CalendarItem{ID: id, Category: category, Title: id, StartTime: start, EndTime: end}
}

func positionOf(t *testing.T, layout Layout, id string) PositionedEvent {
	t.Helper()
	for _, ev := range layout.Events {
		if ev.ID == id {
			return ev
		}
	}
	t.Fatalf("event %s not found in layout", id)
	return PositionedEvent{}
}

func TestAssignColumns_Empty(t *testing.T) {
	layout := AssignColumns(nil)
	assert.Equal(t, 0, layout.ColumnCount)
	// Non-nil so the JSON surface stays an array, never null.
	assert.NotNil(t, layout.Events)
	assert.Empty(t, layout.Events)
}

func TestAssignColumns_SequentialEventsShareColumn(t *testing.T) {
	// Two back-to-back artist sets: no conflict anywhere, so both sit in
	// column 0 spanning the whole grid.
	layout := AssignColumns([]CalendarItem{
		item("a", CategoryArtist, "20:00", "21:00"),
		item("b", CategoryArtist, "21:00", "22:00"),
	})

	assert.Equal(t, 1, layout.ColumnCount)
	for _, ev := range layout.Events {
		assert.Equal(t, 0, ev.Column)
		assert.Equal(t, 1, ev.Span)
	}
}

func TestAssignColumns_OverlapChain(t *testing.T) {
	// A [20:00,21:00) and B [20:30,21:30) overlap; B and C [21:00,22:00)
	// overlap too (21:00 < 21:30); A and C touch at the boundary only.
	// Expected: two columns, A and C stacked together, B alone.
	layout := AssignColumns([]CalendarItem{
		item("a", CategoryActivity, "20:00", "21:00"),
		item("b", CategoryActivity, "20:30", "21:30"),
		item("c", CategoryActivity, "21:00", "22:00"),
	})

	require.Equal(t, 2, layout.ColumnCount)
	a := positionOf(t, layout, "a")
	b := positionOf(t, layout, "b")
	c := positionOf(t, layout, "c")

	assert.Equal(t, 0, a.Column)
	assert.Equal(t, 1, b.Column)
	assert.Equal(t, 0, c.Column)
	assert.NotEqual(t, a.Column, b.Column)
	assert.NotEqual(t, b.Column, c.Column)
}

func TestAssignColumns_ArtistWinsStartTimeTie(t *testing.T) {
	layout := AssignColumns([]CalendarItem{
		item("atelier", CategoryActivity, "20:00", "21:00"),
		item("concert", CategoryArtist, "20:00", "21:00"),
	})

	assert.Equal(t, 0, positionOf(t, layout, "concert").Column)
	assert.Equal(t, 1, positionOf(t, layout, "atelier").Column)
}

func TestAssignColumns_NoOverlapWithinColumn(t *testing.T) {
	items := []CalendarItem{
		item("a", CategoryArtist, "20:00", "22:00"),
		item("b", CategoryActivity, "20:30", "21:00"),
		item("c", CategoryMeal, "19:00", "20:15"),
		item("d", CategoryActivity, "21:00", "23:00"),
		item("e", CategoryArtist, "23:00", "01:00"),
		item("f", CategoryActivity, "00:30", "02:00"),
	}

	layout := AssignColumns(items)

	for i, a := range layout.Events {
		for j, b := range layout.Events {
			if i == j {
				continue
			}
			if a.Column == b.Column {
				assert.False(t, overlaps(a.CalendarItem, b.CalendarItem),
					"%s and %s share column %d but overlap", a.ID, b.ID, a.Column)
			}
		}
	}
}

func TestAssignColumns_SpanNeverCausesOverlap(t *testing.T) {
	items := []CalendarItem{
		item("a", CategoryArtist, "20:00", "22:00"),
		item("b", CategoryActivity, "20:30", "21:00"),
		item("c", CategoryActivity, "22:00", "23:00"),
		item("d", CategoryMeal, "19:00", "20:30"),
	}

	layout := AssignColumns(items)

	for _, ev := range layout.Events {
		assert.GreaterOrEqual(t, ev.Span, 1)
		assert.LessOrEqual(t, ev.Column+ev.Span, layout.ColumnCount)
		for _, other := range layout.Events {
			if other.ID == ev.ID {
				continue
			}
			inSpan := other.Column >= ev.Column && other.Column < ev.Column+ev.Span
			if inSpan {
				assert.False(t, overlaps(ev.CalendarItem, other.CalendarItem),
					"span of %s covers column %d where %s overlaps it", ev.ID, other.Column, other.ID)
			}
		}
	}
}

func TestAssignColumns_Deterministic(t *testing.T) {
	items := []CalendarItem{
		item("a", CategoryArtist, "20:00", "21:30"),
		item("b", CategoryActivity, "20:00", "21:00"),
		item("c", CategoryMeal, "20:45", "22:00"),
		item("d", CategoryActivity, "21:30", "23:00"),
	}

	first := AssignColumns(items)
	second := AssignColumns(items)

	assert.Equal(t, first, second)
}
