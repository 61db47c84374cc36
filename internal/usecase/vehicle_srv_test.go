package usecase

import (
	"context"
	"errors"
	"testing"

	"car-rental/internal/data/entity"
	"car-rental/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestUpdateVehicleStatusTransition(t *testing.T) {
	store, _, userID, vehicle := newBookingFixture()
	svc := NewVehicleService(store.repo(), zap.NewNop())

	maintenance := string(entity.VehicleStatusMaintenance)
	if _, err := svc.UpdateVehicle(context.Background(), userID, &request.UpdateVehicleRequest{
		ID:     vehicle.ID.String(),
		Status: &maintenance,
	}); err != nil {
		t.Fatalf("UpdateVehicle: %v", err)
	}
	if store.vehicles[vehicle.ID].Status != entity.VehicleStatusMaintenance {
		t.Fatalf("expected Maintenance, got %s", store.vehicles[vehicle.ID].Status)
	}

	// Maintenance -> Rented is not a legal owner edit.
	rented := string(entity.VehicleStatusRented)
	_, err := svc.UpdateVehicle(context.Background(), userID, &request.UpdateVehicleRequest{
		ID:     vehicle.ID.String(),
		Status: &rented,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for Maintenance -> Rented, got %v", err)
	}
}

func TestDeleteVehicleGuards(t *testing.T) {
	store, _, userID, vehicle := newBookingFixture()
	svc := NewVehicleService(store.repo(), zap.NewNop())

	store.vehicles[vehicle.ID].Status = entity.VehicleStatusRented
	if err := svc.DeleteVehicle(context.Background(), userID, vehicle.ID.String()); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict deleting a Rented vehicle, got %v", err)
	}

	if err := svc.DeleteVehicle(context.Background(), uuid.New(), vehicle.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another owner, got %v", err)
	}

	store.vehicles[vehicle.ID].Status = entity.VehicleStatusAvailable
	if err := svc.DeleteVehicle(context.Background(), userID, vehicle.ID.String()); err != nil {
		t.Fatalf("DeleteVehicle: %v", err)
	}
	if len(store.vehicles) != 0 {
		t.Fatalf("expected vehicle removed")
	}
}
