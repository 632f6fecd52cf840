package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"festival-companion-backend/internal/sheet"
	"festival-companion-backend/internal/store"
)

// SnapshotProvider yields the current schedule snapshot; implemented by
// the sheet sync service.
type SnapshotProvider interface {
	Snapshot() *sheet.Snapshot
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	sheets  SnapshotProvider
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, sheets SnapshotProvider, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:   s,
		sheets:  sheets,
		webpush: webpushOptions,
	}
}
