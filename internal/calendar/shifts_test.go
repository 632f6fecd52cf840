package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shift(id, pole, organizer, start, end string) CalendarItem {
	return CalendarItem{
		ID:        id,
		Category:  CategoryPerm,
		Title:     pole,
		StartTime: start,
		EndTime:   end,
		Metadata:  Record{"pole": pole, "organizer": organizer},
	}
}

func TestAssignPoleColumns_Empty(t *testing.T) {
	layout := AssignPoleColumns(nil)
	assert.NotNil(t, layout.Events)
	assert.Empty(t, layout.Events)
	assert.Equal(t, 0, layout.TotalUnitColumns)
}

func TestAssignUserColumns_Empty(t *testing.T) {
	layout := AssignUserColumns(nil, "Alice")
	assert.NotNil(t, layout.Events)
	assert.Empty(t, layout.Events)
}

func TestAssignPoleColumns_LaneBookkeeping(t *testing.T) {
	// Bar has two overlapping shifts (needs 2 sub-lanes); Sécurité has two
	// back-to-back shifts (1 sub-lane suffices).
	layout := AssignPoleColumns([]CalendarItem{
		shift("s1", "Sécurité", "Paul", "18:00", "20:00"),
		shift("s2", "Sécurité", "Jeanne", "20:00", "22:00"),
		shift("b1", "Bar", "Alice", "18:00", "20:00"),
		shift("b2", "Bar", "Bruno", "19:00", "21:00"),
	})

	// Poles are alphabetical: Bar before Sécurité.
	require.Equal(t, []string{"Bar", "Sécurité"}, layout.Poles)
	assert.Equal(t, 2, layout.SubColumnCounts["Bar"])
	assert.Equal(t, 1, layout.SubColumnCounts["Sécurité"])

	// Sécurité's block starts right after Bar's two lanes.
	assert.Equal(t, 0, layout.ColumnOffsets["Bar"])
	assert.Equal(t, 2, layout.ColumnOffsets["Sécurité"])
	assert.Equal(t, 3, layout.TotalUnitColumns)
	assert.Equal(t, 2, layout.ColumnCount)
}

func TestAssignPoleColumns_UnitColumnsInvariant(t *testing.T) {
	layout := AssignPoleColumns([]CalendarItem{
		shift("a1", "Accueil", "Nora", "10:00", "14:00"),
		shift("a2", "Accueil", "Lise", "12:00", "16:00"),
		shift("a3", "Accueil", "Marc", "13:00", "15:00"),
		shift("b1", "Bar", "Alice", "18:00", "20:00"),
		shift("c1", "Cuisine", "Tom", "11:00", "13:00"),
		shift("c2", "Cuisine", "Zoé", "13:00", "15:00"),
	})

	sum := 0
	for _, pole := range layout.Poles {
		sum += layout.SubColumnCounts[pole]
	}
	assert.Equal(t, layout.TotalUnitColumns, sum)

	for _, ev := range layout.Events {
		assert.Less(t, ev.ColumnOffset+ev.SubColumn, layout.TotalUnitColumns, "event %s", ev.ID)
		assert.Equal(t, layout.SubColumnCounts[poleOf(ev.CalendarItem)], ev.SubColumnCount)
	}
}

func TestAssignPoleColumns_NoOverlapWithinSubColumn(t *testing.T) {
	layout := AssignPoleColumns([]CalendarItem{
		shift("a1", "Accueil", "Nora", "10:00", "14:00"),
		shift("a2", "Accueil", "Lise", "12:00", "16:00"),
		shift("a3", "Accueil", "Marc", "14:00", "15:00"),
		shift("a4", "Accueil", "Inès", "15:00", "17:00"),
	})

	for i, a := range layout.Events {
		for j, b := range layout.Events {
			if i == j {
				continue
			}
			if a.SubColumn == b.SubColumn {
				assert.False(t, overlaps(a.CalendarItem, b.CalendarItem),
					"%s and %s share sub-lane %d but overlap", a.ID, b.ID, a.SubColumn)
			}
		}
	}
}

func TestAssignPoleColumns_FallsBackToTitle(t *testing.T) {
	noPole := CalendarItem{
		ID: "x1", Category: CategoryPerm, Title: "Parking",
		StartTime: "09:00", EndTime: "12:00",
		Metadata: Record{},
	}

	layout := AssignPoleColumns([]CalendarItem{noPole})
	assert.Equal(t, []string{"Parking"}, layout.Poles)
}

func TestAssignUserColumns_OwnShiftsPinnedToColumnZero(t *testing.T) {
	layout := AssignUserColumns([]CalendarItem{
		shift("b1", "Bar", "Alice", "18:00", "20:00"),
		shift("s1", "Sécurité", "Paul", "18:00", "20:00"),
		shift("c1", "Cuisine", "Alice", "21:00", "23:00"),
		shift("s2", "Sécurité", "Jeanne", "19:00", "21:00"),
	}, "Alice")

	for _, ev := range layout.Events {
		if ev.Metadata["organizer"] == "Alice" {
			assert.Equal(t, 0, ev.Column, "own shift %s must stay in the first lane", ev.ID)
		} else {
			assert.GreaterOrEqual(t, ev.Column, 1, "foreign shift %s must not use the user lane", ev.ID)
		}
	}

	// s1 and s2 overlap, so the non-user subset still needs two lanes.
	assert.Equal(t, 3, layout.ColumnCount)
}

func TestAssignUserColumns_NoMatchFallsBackToGrid(t *testing.T) {
	items := []CalendarItem{
		shift("b1", "Bar", "Alice", "18:00", "20:00"),
		shift("s1", "Sécurité", "Paul", "19:00", "21:00"),
	}

	assert.Equal(t, AssignColumns(items), AssignUserColumns(items, "Personne"))
	assert.Equal(t, AssignColumns(items), AssignUserColumns(items, ""))
}
