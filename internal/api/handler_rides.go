package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"festival-companion-backend/internal/model"
	"festival-companion-backend/internal/store"
)

type createRideRequest struct {
	Driver      string    `json:"driver" binding:"required"`
	Contact     string    `json:"contact"`
	Origin      string    `json:"origin" binding:"required"`
	Destination string    `json:"destination" binding:"required"`
	DepartureAt time.Time `json:"departureAt" binding:"required"`
	Seats       int       `json:"seats" binding:"required,gt=0"`
	Notes       string    `json:"notes"`
}

// ListRides handles GET /api/rides.
func (h *Handler) ListRides(c *gin.Context) {
	rides, err := h.store.ListRides(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rides"})
		return
	}
	if rides == nil {
		rides = []model.Ride{}
	}
	c.JSON(http.StatusOK, rides)
}

// CreateRide handles POST /api/rides.
func (h *Handler) CreateRide(c *gin.Context) {
	var req createRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ride := model.Ride{
		Driver:      req.Driver,
		Contact:     req.Contact,
		Origin:      req.Origin,
		Destination: req.Destination,
		DepartureAt: req.DepartureAt,
		Seats:       req.Seats,
		Notes:       req.Notes,
	}
	if err := h.store.CreateRide(c.Request.Context(), &ride); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ride"})
		return
	}

	c.JSON(http.StatusCreated, ride)
}

// DeleteRide handles DELETE /api/rides/{id}.
func (h *Handler) DeleteRide(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ride ID"})
		return
	}

	switch err := h.store.DeleteRide(c.Request.Context(), id); {
	case errors.Is(err, store.ErrRideNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "ride not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete ride"})
	default:
		c.Status(http.StatusNoContent)
	}
}

type joinRideRequest struct {
	Name  string `json:"name" binding:"required"`
	Seats int    `json:"seats"`
}

// JoinRide handles POST /api/rides/{id}/passengers.
func (h *Handler) JoinRide(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ride ID"})
		return
	}

	var req joinRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch err := h.store.JoinRide(c.Request.Context(), id, req.Name, req.Seats); {
	case errors.Is(err, store.ErrRideNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "ride not found"})
	case errors.Is(err, store.ErrRideFull):
		c.JSON(http.StatusConflict, gin.H{"error": "ride is full"})
	case errors.Is(err, store.ErrAlreadyPassenger):
		c.JSON(http.StatusConflict, gin.H{"error": "already joined this ride"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join ride"})
	default:
		c.Status(http.StatusCreated)
	}
}

// LeaveRide handles DELETE /api/rides/{id}/passengers/{name}.
func (h *Handler) LeaveRide(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ride ID"})
		return
	}

	switch err := h.store.LeaveRide(c.Request.Context(), id, c.Param("name")); {
	case errors.Is(err, store.ErrPassengerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "passenger not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to leave ride"})
	default:
		c.Status(http.StatusNoContent)
	}
}
