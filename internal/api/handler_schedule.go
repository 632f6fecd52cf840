package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"festival-companion-backend/internal/calendar"
	"festival-companion-backend/internal/sheet"
)

// snapshotOr503 fetches the current snapshot, answering 503 when no sheet
// sync has completed yet.
func (h *Handler) snapshotOr503(c *gin.Context) (*sheet.Snapshot, bool) {
	snap := h.sheets.Snapshot()
	if snap == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "schedule not synced yet"})
		return nil, false
	}
	return snap, true
}

// GetDays handles GET /api/days.
func (h *Handler) GetDays(c *gin.Context) {
	snap, ok := h.snapshotOr503(c)
	if !ok {
		return
	}
	days := snap.Days
	if days == nil {
		days = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "fetchedAt": snap.FetchedAt})
}

// GetSchedule handles GET /api/schedule/{day}. Optional query params:
// q (substring match on title/description) and category (comma-separated
// allow-list). The layout is recomputed per request; the caching
// middleware memoizes it per URI.
func (h *Handler) GetSchedule(c *gin.Context) {
	snap, ok := h.snapshotOr503(c)
	if !ok {
		return
	}

	items := snap.Schedule[c.Param("day")]
	items = filterItems(items, c.Query("q"), c.Query("category"))

	c.JSON(http.StatusOK, calendar.AssignColumns(items))
}

// GetShifts handles GET /api/schedule/{day}/shifts. The response always
// carries the pole-grouped layout; when ?user=NAME is given it also
// includes the layout with that user's shifts pinned to the first lane.
func (h *Handler) GetShifts(c *gin.Context) {
	snap, ok := h.snapshotOr503(c)
	if !ok {
		return
	}

	items := snap.Shifts[c.Param("day")]
	response := gin.H{"poleLayout": calendar.AssignPoleColumns(items)}
	if user := c.Query("user"); user != "" {
		response["userLayout"] = calendar.AssignUserColumns(items, user)
	}

	c.JSON(http.StatusOK, response)
}

// filterItems applies the search and category filters of the schedule
// endpoints. Empty filters pass everything through.
func filterItems(items []calendar.CalendarItem, query, categories string) []calendar.CalendarItem {
	if query == "" && categories == "" {
		return items
	}

	allowed := make(map[string]bool)
	for _, cat := range strings.Split(categories, ",") {
		if cat = strings.TrimSpace(cat); cat != "" {
			allowed[cat] = true
		}
	}
	query = strings.ToLower(query)

	var out []calendar.CalendarItem
	for _, item := range items {
		if len(allowed) > 0 && !allowed[item.Category] {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Title), query) &&
			!strings.Contains(strings.ToLower(item.Description), query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// listCategory answers the flat per-day listing endpoints for one
// category.
func (h *Handler) listCategory(c *gin.Context, category string) {
	snap, ok := h.snapshotOr503(c)
	if !ok {
		return
	}

	byDay := make(calendar.EventsByDay)
	source := snap.Schedule
	if category == calendar.CategoryPerm {
		source = snap.Shifts
	}
	for day, items := range source {
		for _, item := range items {
			if item.Category == category {
				byDay[day] = append(byDay[day], item)
			}
		}
	}

	c.JSON(http.StatusOK, byDay)
}

// GetArtists handles GET /api/artists.
func (h *Handler) GetArtists(c *gin.Context) {
	h.listCategory(c, calendar.CategoryArtist)
}

// GetActivities handles GET /api/activities.
func (h *Handler) GetActivities(c *gin.Context) {
	h.listCategory(c, calendar.CategoryActivity)
}

// GetMenu handles GET /api/menu.
func (h *Handler) GetMenu(c *gin.Context) {
	h.listCategory(c, calendar.CategoryMeal)
}
