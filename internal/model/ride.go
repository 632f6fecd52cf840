package model

import "time"

// Ride represents a carpool offer posted by a festival-goer.
type Ride struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Driver      string    `gorm:"size:128;not null" json:"driver"`
	Contact     string    `gorm:"size:128" json:"contact"`
	Origin      string    `gorm:"size:256;not null" json:"origin"`
	Destination string    `gorm:"size:256;not null" json:"destination"`
	DepartureAt time.Time `gorm:"not null;index" json:"departureAt"`
	Seats       int       `gorm:"not null" json:"seats"`
	Notes       string    `gorm:"size:1024" json:"notes"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`

	// Associations
	Passengers []RidePassenger `gorm:"foreignKey:RideID;constraint:OnDelete:CASCADE" json:"passengers"`
}

// RidePassenger is a claimed seat on a ride.
type RidePassenger struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	RideID    int64     `gorm:"index;not null;uniqueIndex:idx_ride_passenger" json:"rideId"`
	Name      string    `gorm:"size:128;not null;uniqueIndex:idx_ride_passenger" json:"name"`
	Seats     int       `gorm:"not null;default:1" json:"seats"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}
