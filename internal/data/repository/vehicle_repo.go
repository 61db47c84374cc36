package repository

import (
	"context"
	"fmt"

	"car-rental/internal/data/entity"
	"car-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Status transitions. Rent and Release are conditional updates so the
	// check-then-flip cannot race: they report whether the row actually
	// moved.
	Rent(ctx context.Context, id uuid.UUID) (bool, error)
	Release(ctx context.Context, id uuid.UUID) (bool, error)
	SetStatus(ctx context.Context, id uuid.UUID, status entity.VehicleStatus) error

	// Reconciliation queries for the maintenance sweep.
	FindRentedWithoutActiveBooking(ctx context.Context) ([]uuid.UUID, error)
	FindAvailableWithActiveBooking(ctx context.Context) ([]uuid.UUID, error)
}

type vehicleRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewVehicleRepository(db database.Querier, log *zap.Logger) VehicleRepository {
	return &vehicleRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle")),
	}
}

const vehicleColumns = `id, owner_id, make, model, year, daily_rate, status, created_at, updated_at`

func scanVehicle(row pgx.Row) (*entity.Vehicle, error) {
	var vehicle entity.Vehicle
	err := row.Scan(
		&vehicle.ID,
		&vehicle.OwnerID,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.DailyRate,
		&vehicle.Status,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, owner_id, make, model, year, daily_rate, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.OwnerID,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.DailyRate,
		vehicle.Status,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create vehicle",
			zap.Error(err),
			zap.String("owner_id", vehicle.OwnerID.String()),
			zap.String("make", vehicle.Make),
			zap.String("model", vehicle.Model),
		)
		return fmt.Errorf("create vehicle: %w", err)
	}

	return nil
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle by ID",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return nil, fmt.Errorf("find vehicle by ID %s: %w", id.String(), err)
	}

	return vehicle, nil
}

func (r *vehicleRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to find vehicles by owner ID",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find vehicles by owner ID %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			r.log.Error("Failed to scan vehicle row", zap.Error(err))
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles
		SET make = $2, model = $3, year = $4, daily_rate = $5, status = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.DailyRate,
		vehicle.Status,
		vehicle.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update vehicle",
			zap.Error(err),
			zap.String("vehicle_id", vehicle.ID.String()),
		)
		return fmt.Errorf("update vehicle %s: %w", vehicle.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found", vehicle.ID.String())
	}

	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM vehicles WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete vehicle",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return fmt.Errorf("delete vehicle %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found", id.String())
	}

	r.log.Info("Vehicle deleted", zap.String("vehicle_id", id.String()))
	return nil
}

func (r *vehicleRepository) Rent(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE vehicles
		SET status = 'Rented', updated_at = NOW()
		WHERE id = $1 AND status = 'Available'
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to rent vehicle",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return false, fmt.Errorf("rent vehicle %s: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *vehicleRepository) Release(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE vehicles
		SET status = 'Available', updated_at = NOW()
		WHERE id = $1 AND status = 'Rented'
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to release vehicle",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return false, fmt.Errorf("release vehicle %s: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *vehicleRepository) SetStatus(ctx context.Context, id uuid.UUID, status entity.VehicleStatus) error {
	query := `UPDATE vehicles SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to set vehicle status",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("set vehicle %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found", id.String())
	}

	return nil
}

func (r *vehicleRepository) FindRentedWithoutActiveBooking(ctx context.Context) ([]uuid.UUID, error) {
	query := `
		SELECT v.id
		FROM vehicles v
		WHERE v.status = 'Rented'
		  AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.vehicle_id = v.id)
	`

	return r.queryIDs(ctx, query, "find rented vehicles without active booking")
}

func (r *vehicleRepository) FindAvailableWithActiveBooking(ctx context.Context) ([]uuid.UUID, error) {
	query := `
		SELECT v.id
		FROM vehicles v
		WHERE v.status = 'Available'
		  AND EXISTS (SELECT 1 FROM bookings b WHERE b.vehicle_id = v.id)
	`

	return r.queryIDs(ctx, query, "find available vehicles with active booking")
}

func (r *vehicleRepository) queryIDs(ctx context.Context, query, operation string) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to "+operation, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			r.log.Error("Failed to scan vehicle ID", zap.Error(err))
			return nil, fmt.Errorf("scan vehicle ID: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
