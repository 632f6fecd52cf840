package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"festival-companion-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	ListRides(ctx context.Context) ([]model.Ride, error)
	GetRide(ctx context.Context, id int64) (model.Ride, error)
	CreateRide(ctx context.Context, ride *model.Ride) error
	DeleteRide(ctx context.Context, id int64) error
	JoinRide(ctx context.Context, rideID int64, name string, seats int) error
	LeaveRide(ctx context.Context, rideID int64, name string) error

	UpsertSubscription(ctx context.Context, sub model.PushSubscription, categories []string) error
	GetSubscription(ctx context.Context, endpoint string) (model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
	SubscriptionsForCategory(ctx context.Context, category string) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection for callers that run their own
// queries, such as the notification worker pool.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// ListRides returns all rides ordered by departure, passengers preloaded.
func (s *gormStore) ListRides(ctx context.Context) ([]model.Ride, error) {
	var rides []model.Ride
	if err := s.db.WithContext(ctx).
		Preload("Passengers").
		Order("departure_at ASC").
		Find(&rides).Error; err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}
	return rides, nil
}

// GetRide returns one ride with its passengers.
func (s *gormStore) GetRide(ctx context.Context, id int64) (model.Ride, error) {
	var ride model.Ride
	err := s.db.WithContext(ctx).Preload("Passengers").First(&ride, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Ride{}, ErrRideNotFound
	}
	if err != nil {
		return model.Ride{}, fmt.Errorf("failed to fetch ride %d: %w", id, err)
	}
	return ride, nil
}

// CreateRide persists a new carpool offer.
func (s *gormStore) CreateRide(ctx context.Context, ride *model.Ride) error {
	if err := s.db.WithContext(ctx).Create(ride).Error; err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}
	return nil
}

// DeleteRide removes a ride and, via the cascade, its passengers.
func (s *gormStore) DeleteRide(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Ride{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete ride %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRideNotFound
	}
	return nil
}

// JoinRide claims seats on a ride, refusing when the ride is full or the
// passenger already joined. The seat check and insert run in one
// transaction so concurrent joins cannot oversell the car.
func (s *gormStore) JoinRide(ctx context.Context, rideID int64, name string, seats int) error {
	if seats <= 0 {
		seats = 1
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ride model.Ride
		err := tx.Preload("Passengers").First(&ride, rideID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRideNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to fetch ride %d: %w", rideID, err)
		}

		taken := 0
		for _, p := range ride.Passengers {
			if p.Name == name {
				return ErrAlreadyPassenger
			}
			taken += p.Seats
		}
		if taken+seats > ride.Seats {
			return ErrRideFull
		}

		passenger := model.RidePassenger{RideID: rideID, Name: name, Seats: seats}
		if err := tx.Create(&passenger).Error; err != nil {
			return fmt.Errorf("failed to add passenger to ride %d: %w", rideID, err)
		}
		return nil
	})
}

// LeaveRide releases a passenger's seats.
func (s *gormStore) LeaveRide(ctx context.Context, rideID int64, name string) error {
	res := s.db.WithContext(ctx).
		Where("ride_id = ? AND name = ?", rideID, name).
		Delete(&model.RidePassenger{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove passenger from ride %d: %w", rideID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPassengerNotFound
	}
	return nil
}

// UpsertSubscription creates or replaces a push subscription and resets
// its category associations to the given set.
func (s *gormStore) UpsertSubscription(ctx context.Context, sub model.PushSubscription, categories []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "lead_minutes"}),
		}).Create(&sub).Error; err != nil {
			return fmt.Errorf("failed to upsert subscription: %w", err)
		}

		var cats []model.Category
		if len(categories) > 0 {
			if err := tx.Find(&cats, "name IN ?", categories).Error; err != nil {
				return fmt.Errorf("failed to resolve categories: %w", err)
			}
		}

		catPtrs := make([]*model.Category, len(cats))
		for i := range cats {
			catPtrs[i] = &cats[i]
		}
		if err := tx.Model(&sub).Association("Categories").Replace(catPtrs); err != nil {
			return fmt.Errorf("failed to replace category associations: %w", err)
		}
		return nil
	})
}

// GetSubscription fetches a subscription with its categories preloaded.
func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (model.PushSubscription, error) {
	var sub model.PushSubscription
	err := s.db.WithContext(ctx).
		Preload("Categories").
		First(&sub, "endpoint = ?", endpoint).Error
	if err != nil {
		return model.PushSubscription{}, err
	}
	return sub, nil
}

// DeleteSubscription removes a subscription by endpoint.
func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	if err := s.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&model.PushSubscription{Endpoint: endpoint}).Error; err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

// SubscriptionsForCategory returns every subscription opted into the
// given event category.
func (s *gormStore) SubscriptionsForCategory(ctx context.Context, category string) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.db.WithContext(ctx).
		Joins("JOIN subscription_category_mapping scm ON scm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("scm.category_name = ?", category).
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions for category %s: %w", category, err)
	}
	return subs, nil
}
