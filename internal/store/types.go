package store

import "errors"

// Sentinel errors returned by ride operations so handlers can map them to
// meaningful HTTP statuses.
var (
	ErrRideNotFound      = errors.New("ride not found")
	ErrRideFull          = errors.New("ride has no free seats left")
	ErrAlreadyPassenger  = errors.New("passenger already joined this ride")
	ErrPassengerNotFound = errors.New("passenger not found on this ride")
)
