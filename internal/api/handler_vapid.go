package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"festival-companion-backend/internal/calendar"
)

// subscribableCategories lists the category names accepted by
// PUT /api/subscriptions.
var subscribableCategories = []string{
	calendar.CategoryArtist,
	calendar.CategoryActivity,
	calendar.CategoryMeal,
	calendar.CategoryPerm,
}

// GetVAPIDPublicKey returns the VAPID public key along with the
// subscribable categories, so a client can render its subscribe form
// from a single request.
func (h *Handler) GetVAPIDPublicKey(c *gin.Context) {
	if h.webpush == nil || h.webpush.VAPIDPublicKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push notifications are not configured"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"public_key": h.webpush.VAPIDPublicKey,
		"categories": subscribableCategories,
	})
}
