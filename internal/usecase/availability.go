package usecase

import (
	"fmt"

	"car-rental/internal/data/entity"
)

// VehicleEvent is a booking-lifecycle event applied to a vehicle's status.
type VehicleEvent struct {
	Kind VehicleEventKind

	// OtherActiveBookings guards the Rented -> Available transition on
	// delete: the vehicle stays Rented while any other booking still
	// references it.
	OtherActiveBookings bool
}

type VehicleEventKind string

const (
	EventBookingCreated VehicleEventKind = "booking_created"
	EventBookingDeleted VehicleEventKind = "booking_deleted"
)

// allowTransition is the vehicle status graph. Maintenance is entered and
// left only by explicit owner edits, never by booking events.
var allowTransition = map[entity.VehicleStatus][]entity.VehicleStatus{
	entity.VehicleStatusAvailable:   {entity.VehicleStatusRented, entity.VehicleStatusMaintenance},
	entity.VehicleStatusRented:      {entity.VehicleStatusAvailable, entity.VehicleStatusMaintenance},
	entity.VehicleStatusMaintenance: {entity.VehicleStatusAvailable},
}

// CanTransition reports whether from -> to is an allowed status move.
func CanTransition(from, to entity.VehicleStatus) bool {
	if from == to {
		return true
	}
	for _, s := range allowTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyBookingEvent transitions a vehicle's status for a booking event.
// This is the single place booking events touch vehicle status; the
// repository layer enforces the same transitions with conditional updates
// so concurrent requests cannot both move the same vehicle.
func ApplyBookingEvent(v *entity.Vehicle, ev VehicleEvent) error {
	if v == nil {
		return fmt.Errorf("vehicle is nil")
	}

	switch ev.Kind {
	case EventBookingCreated:
		if v.Status != entity.VehicleStatusAvailable {
			return fmt.Errorf("%w: vehicle %s is %s", ErrVehicleUnavailable, v.ID.String(), v.Status)
		}
		v.Status = entity.VehicleStatusRented
		return nil

	case EventBookingDeleted:
		if ev.OtherActiveBookings {
			// Another booking still holds the vehicle.
			return nil
		}
		if v.Status == entity.VehicleStatusRented {
			v.Status = entity.VehicleStatusAvailable
		}
		return nil

	default:
		return fmt.Errorf("unknown vehicle event %q", ev.Kind)
	}
}
