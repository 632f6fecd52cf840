package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"festival-companion-backend/config"
	"festival-companion-backend/internal/mw"
	"festival-companion-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, s store.Store, sheets SnapshotProvider, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, sheets, webpushOptions)

	limit := rate.Limit(cfg.RateLimitPerSec)
	if limit <= 0 {
		limit = rate.Limit(10)
	}
	rateLimiter := mw.RateLimiter(limit, 5)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Schedule, computed from the sheet snapshot.
		api.GET("/days", caching, handler.GetDays)
		api.GET("/schedule/:day", caching, handler.GetSchedule)
		api.GET("/schedule/:day/shifts", handler.GetShifts)
		api.GET("/artists", caching, handler.GetArtists)
		api.GET("/activities", caching, handler.GetActivities)
		api.GET("/menu", caching, handler.GetMenu)

		// Carpooling.
		api.GET("/rides", handler.ListRides)
		api.POST("/rides", handler.CreateRide)
		api.DELETE("/rides/:id", handler.DeleteRide)
		api.POST("/rides/:id/passengers", handler.JoinRide)
		api.DELETE("/rides/:id/passengers/:name", handler.LeaveRide)

		// Push subscriptions.
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
