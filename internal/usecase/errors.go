package usecase

import "errors"

// Sentinel errors services wrap with context; handlers classify them with
// errors.Is and map them onto HTTP statuses.
var (
	// ErrNotFound covers both missing records and records owned by another
	// caller, so cross-owner probes cannot distinguish the two.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrVehicleUnavailable is returned when a booking targets a vehicle
	// that is not currently Available.
	ErrVehicleUnavailable = errors.New("vehicle unavailable")

	// ErrConflict marks duplicate unique values (booking signature,
	// customer email, waitlist entry).
	ErrConflict = errors.New("already exists")

	// ErrBadSignature marks a webhook whose signature did not verify.
	ErrBadSignature = errors.New("invalid webhook signature")
)
