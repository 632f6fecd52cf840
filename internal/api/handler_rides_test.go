package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"festival-companion-backend/internal/model"
	"festival-companion-backend/internal/store"
)

// mockStore implements the ride-related subset of store.Store.
type mockStore struct {
	store.Store
	ListRidesFunc  func(ctx context.Context) ([]model.Ride, error)
	CreateRideFunc func(ctx context.Context, ride *model.Ride) error
	DeleteRideFunc func(ctx context.Context, id int64) error
	JoinRideFunc   func(ctx context.Context, rideID int64, name string, seats int) error
	LeaveRideFunc  func(ctx context.Context, rideID int64, name string) error
}

func (m *mockStore) ListRides(ctx context.Context) ([]model.Ride, error) {
	return m.ListRidesFunc(ctx)
}
func (m *mockStore) CreateRide(ctx context.Context, ride *model.Ride) error {
	return m.CreateRideFunc(ctx, ride)
}
func (m *mockStore) DeleteRide(ctx context.Context, id int64) error {
	return m.DeleteRideFunc(ctx, id)
}
func (m *mockStore) JoinRide(ctx context.Context, rideID int64, name string, seats int) error {
	return m.JoinRideFunc(ctx, rideID, name, seats)
}
func (m *mockStore) LeaveRide(ctx context.Context, rideID int64, name string) error {
	return m.LeaveRideFunc(ctx, rideID, name)
}
func (m *mockStore) DB() *gorm.DB { return nil }

func setupRideRouter(ms *mockStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(ms, nil, nil)
	r.GET("/api/rides", handler.ListRides)
	r.POST("/api/rides", handler.CreateRide)
	r.DELETE("/api/rides/:id", handler.DeleteRide)
	r.POST("/api/rides/:id/passengers", handler.JoinRide)
	r.DELETE("/api/rides/:id/passengers/:name", handler.LeaveRide)
	return r
}

func TestListRides_EmptyIsArray(t *testing.T) {
	router := setupRideRouter(&mockStore{
		ListRidesFunc: func(ctx context.Context) ([]model.Ride, error) { return nil, nil },
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/rides", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateRide_Validation(t *testing.T) {
	router := setupRideRouter(&mockStore{})

	// Missing required fields.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/rides", strings.NewReader(`{"driver":"Alice"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRide(t *testing.T) {
	var created *model.Ride
	router := setupRideRouter(&mockStore{
		CreateRideFunc: func(ctx context.Context, ride *model.Ride) error {
			ride.ID = 42
			created = ride
			return nil
		},
	})

	body := `{"driver":"Alice","origin":"Lyon","destination":"Le Festival","departureAt":"2026-07-24T14:00:00Z","seats":3}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/rides", strings.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotNil(t, created)
	assert.Equal(t, "Alice", created.Driver)
	assert.Contains(t, w.Body.String(), `"id":42`)
}

func TestJoinRide_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name         string
		storeErr     error
		expectedCode int
	}{
		{"Ride not found", store.ErrRideNotFound, http.StatusNotFound},
		{"Ride full", store.ErrRideFull, http.StatusConflict},
		{"Already joined", store.ErrAlreadyPassenger, http.StatusConflict},
		{"Success", nil, http.StatusCreated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupRideRouter(&mockStore{
				JoinRideFunc: func(ctx context.Context, rideID int64, name string, seats int) error {
					return tc.storeErr
				},
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/rides/1/passengers", strings.NewReader(`{"name":"Bruno"}`))
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedCode, w.Code)
		})
	}
}

func TestLeaveRide_NotFound(t *testing.T) {
	router := setupRideRouter(&mockStore{
		LeaveRideFunc: func(ctx context.Context, rideID int64, name string) error {
			return store.ErrPassengerNotFound
		},
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/rides/1/passengers/Bruno", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRide_InvalidID(t *testing.T) {
	router := setupRideRouter(&mockStore{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/rides/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
