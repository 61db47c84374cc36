package usecase

import (
	"errors"
	"testing"

	"car-rental/internal/data/entity"

	"github.com/google/uuid"
)

func TestCanTransition(t *testing.T) {
	if !CanTransition(entity.VehicleStatusAvailable, entity.VehicleStatusRented) {
		t.Fatalf("expected Available -> Rented allowed")
	}
	if !CanTransition(entity.VehicleStatusRented, entity.VehicleStatusAvailable) {
		t.Fatalf("expected Rented -> Available allowed")
	}
	if !CanTransition(entity.VehicleStatusMaintenance, entity.VehicleStatusAvailable) {
		t.Fatalf("expected Maintenance -> Available allowed")
	}
	if CanTransition(entity.VehicleStatusMaintenance, entity.VehicleStatusRented) {
		t.Fatalf("expected Maintenance -> Rented not allowed")
	}
	if !CanTransition(entity.VehicleStatusRented, entity.VehicleStatusRented) {
		t.Fatalf("expected no-op transition allowed")
	}
}

func TestApplyBookingEvent(t *testing.T) {
	v := &entity.Vehicle{Status: entity.VehicleStatusAvailable}
	v.ID = uuid.New()

	if err := ApplyBookingEvent(v, VehicleEvent{Kind: EventBookingCreated}); err != nil {
		t.Fatalf("ApplyBookingEvent: %v", err)
	}
	if v.Status != entity.VehicleStatusRented {
		t.Fatalf("expected Rented after booking created, got %s", v.Status)
	}

	// A second booking against the now-Rented vehicle must fail.
	err := ApplyBookingEvent(v, VehicleEvent{Kind: EventBookingCreated})
	if !errors.Is(err, ErrVehicleUnavailable) {
		t.Fatalf("expected ErrVehicleUnavailable, got %v", err)
	}

	// Delete with another active booking keeps the vehicle Rented.
	if err := ApplyBookingEvent(v, VehicleEvent{Kind: EventBookingDeleted, OtherActiveBookings: true}); err != nil {
		t.Fatalf("ApplyBookingEvent: %v", err)
	}
	if v.Status != entity.VehicleStatusRented {
		t.Fatalf("expected vehicle to stay Rented, got %s", v.Status)
	}

	// Deleting the last booking releases it.
	if err := ApplyBookingEvent(v, VehicleEvent{Kind: EventBookingDeleted}); err != nil {
		t.Fatalf("ApplyBookingEvent: %v", err)
	}
	if v.Status != entity.VehicleStatusAvailable {
		t.Fatalf("expected Available after last booking deleted, got %s", v.Status)
	}
}

func TestApplyBookingEventMaintenance(t *testing.T) {
	v := &entity.Vehicle{Status: entity.VehicleStatusMaintenance}
	v.ID = uuid.New()

	if err := ApplyBookingEvent(v, VehicleEvent{Kind: EventBookingCreated}); !errors.Is(err, ErrVehicleUnavailable) {
		t.Fatalf("expected ErrVehicleUnavailable for Maintenance vehicle, got %v", err)
	}

	// Booking deletion never touches a vehicle in Maintenance.
	if err := ApplyBookingEvent(v, VehicleEvent{Kind: EventBookingDeleted}); err != nil {
		t.Fatalf("ApplyBookingEvent: %v", err)
	}
	if v.Status != entity.VehicleStatusMaintenance {
		t.Fatalf("expected Maintenance preserved, got %s", v.Status)
	}
}
