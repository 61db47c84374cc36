package usecase

import (
	"context"
	"fmt"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VehicleService interface {
	GetVehicles(ctx context.Context, userID uuid.UUID) ([]response.VehicleResponse, error)
	GetVehicleByID(ctx context.Context, userID uuid.UUID, vehicleID string) (*response.VehicleResponse, error)
	CreateVehicle(ctx context.Context, userID uuid.UUID, req *request.CreateVehicleRequest) (*response.VehicleResponse, error)
	UpdateVehicle(ctx context.Context, userID uuid.UUID, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error)
	DeleteVehicle(ctx context.Context, userID uuid.UUID, vehicleID string) error
}

type vehicleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVehicleService(repo *repository.Repository, log *zap.Logger) VehicleService {
	return &vehicleService{
		repo: repo,
		log:  log.With(zap.String("service", "vehicle")),
	}
}

func (s *vehicleService) GetVehicles(ctx context.Context, userID uuid.UUID) ([]response.VehicleResponse, error) {
	vehicles, err := s.repo.Vehicle.FindByOwnerID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get vehicles",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("get vehicles: %w", err)
	}

	responses := make([]response.VehicleResponse, len(vehicles))
	for i, vehicle := range vehicles {
		responses[i] = response.VehicleToResponse(vehicle)
	}

	return responses, nil
}

func (s *vehicleService) GetVehicleByID(ctx context.Context, userID uuid.UUID, vehicleID string) (*response.VehicleResponse, error) {
	vehicle, err := s.findOwnedVehicle(ctx, userID, vehicleID)
	if err != nil {
		return nil, err
	}

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) CreateVehicle(ctx context.Context, userID uuid.UUID, req *request.CreateVehicleRequest) (*response.VehicleResponse, error) {
	status := entity.VehicleStatus(req.Status)
	if req.Status == "" {
		status = entity.VehicleStatusAvailable
	}

	now := time.Now()
	vehicle := &entity.Vehicle{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:   userID,
		Make:      req.Make,
		Model:     req.Model,
		Year:      req.Year,
		DailyRate: req.DailyRate,
		Status:    status,
	}

	if err := s.repo.Vehicle.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}

	s.log.Info("Vehicle created",
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("user_id", userID.String()),
	)

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, userID uuid.UUID, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error) {
	vehicle, err := s.findOwnedVehicle(ctx, userID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Make != nil {
		vehicle.Make = *req.Make
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.DailyRate != nil {
		vehicle.DailyRate = *req.DailyRate
	}
	if req.Status != nil {
		next := entity.VehicleStatus(*req.Status)
		if !CanTransition(vehicle.Status, next) {
			return nil, fmt.Errorf("%w: cannot move vehicle from %s to %s", ErrValidation, vehicle.Status, next)
		}
		vehicle.Status = next
	}
	vehicle.UpdatedAt = time.Now()

	if err := s.repo.Vehicle.Update(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, userID uuid.UUID, vehicleID string) error {
	vehicle, err := s.findOwnedVehicle(ctx, userID, vehicleID)
	if err != nil {
		return err
	}

	if vehicle.Status == entity.VehicleStatusRented {
		return fmt.Errorf("%w: vehicle %s has an active booking", ErrConflict, vehicle.ID.String())
	}

	if err := s.repo.Vehicle.Delete(ctx, vehicle.ID); err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}

	return nil
}

// findOwnedVehicle loads a vehicle and checks ownership. A vehicle that
// belongs to someone else looks exactly like a missing one.
func (s *vehicleService) findOwnedVehicle(ctx context.Context, userID uuid.UUID, vehicleID string) (*entity.Vehicle, error) {
	id, err := uuid.Parse(vehicleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid vehicle id %q", ErrValidation, vehicleID)
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	if vehicle == nil || vehicle.OwnerID != userID {
		return nil, fmt.Errorf("%w: vehicle %s", ErrNotFound, vehicleID)
	}

	return vehicle, nil
}
