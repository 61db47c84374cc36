package repository

import (
	"context"
	"fmt"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingDetail is a booking joined with its vehicle and linked customer,
// used by the single-booking read.
type BookingDetail struct {
	entity.Booking
	Vehicle  *entity.Vehicle
	Customer *entity.Customer
}

// BookingReminder is the slim projection the reminder sweep mails from.
type BookingReminder struct {
	BookingID uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Vehicle   string
	Email     string
	Name      string
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*BookingDetail, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.Booking, error)
	FindStartingBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Booking, error)
	CountOthersByVehicleID(ctx context.Context, vehicleID, excludeBookingID uuid.UUID) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Reminder sweep across all owners.
	FindUpcomingReminders(ctx context.Context, from, to time.Time) ([]*BookingReminder, error)
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, vehicle_id, customer_id, start_date, end_date, total_amount, status,
		pickup_location, dropoff_location, special_requests, insurance, mileage_policy, fuel_policy,
		insurance_add_on, gps_add_on, child_seat_add_on, temp_name, temp_email, temp_phone,
		created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.VehicleID,
		&booking.CustomerID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.TotalAmount,
		&booking.Status,
		&booking.PickupLocation,
		&booking.DropoffLocation,
		&booking.SpecialRequests,
		&booking.Insurance,
		&booking.MileagePolicy,
		&booking.FuelPolicy,
		&booking.InsuranceAddOn,
		&booking.GPSAddOn,
		&booking.ChildSeatAddOn,
		&booking.TempName,
		&booking.TempEmail,
		&booking.TempPhone,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, vehicle_id, customer_id, start_date, end_date, total_amount, status,
			pickup_location, dropoff_location, special_requests, insurance, mileage_policy, fuel_policy,
			insurance_add_on, gps_add_on, child_seat_add_on, temp_name, temp_email, temp_phone,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.VehicleID,
		booking.CustomerID,
		booking.StartDate,
		booking.EndDate,
		booking.TotalAmount,
		booking.Status,
		booking.PickupLocation,
		booking.DropoffLocation,
		booking.SpecialRequests,
		booking.Insurance,
		booking.MileagePolicy,
		booking.FuelPolicy,
		booking.InsuranceAddOn,
		booking.GPSAddOn,
		booking.ChildSeatAddOn,
		booking.TempName,
		booking.TempEmail,
		booking.TempPhone,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("vehicle_id", booking.VehicleID.String()),
		)
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*BookingDetail, error) {
	booking, err := r.FindByID(ctx, id)
	if err != nil || booking == nil {
		return nil, err
	}

	detail := &BookingDetail{Booking: *booking}

	vehicleQuery := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	vehicle, err := scanVehicle(r.db.QueryRow(ctx, vehicleQuery, booking.VehicleID))
	if err != nil && err != pgx.ErrNoRows {
		r.log.Error("Failed to join vehicle for booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("join vehicle for booking %s: %w", id.String(), err)
	}
	if err == nil {
		detail.Vehicle = vehicle
	}

	if booking.CustomerID != nil {
		customerQuery := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
		customer, err := scanCustomer(r.db.QueryRow(ctx, customerQuery, *booking.CustomerID))
		if err != nil && err != pgx.ErrNoRows {
			r.log.Error("Failed to join customer for booking",
				zap.Error(err),
				zap.String("booking_id", id.String()),
			)
			return nil, fmt.Errorf("join customer for booking %s: %w", id.String(), err)
		}
		if err == nil {
			detail.Customer = customer
		}
	}

	return detail, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	return r.queryBookings(ctx, query, "find bookings by user ID", userID)
}

func (r *bookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE customer_id = $1
		ORDER BY start_date
	`

	return r.queryBookings(ctx, query, "find bookings by customer ID", customerID)
}

func (r *bookingRepository) FindStartingBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1 AND start_date >= $2 AND start_date <= $3
		ORDER BY start_date
	`

	return r.queryBookings(ctx, query, "find bookings starting in window", userID, from, to)
}

func (r *bookingRepository) CountOthersByVehicleID(ctx context.Context, vehicleID, excludeBookingID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE vehicle_id = $1 AND id <> $2`

	var count int64
	err := r.db.QueryRow(ctx, query, vehicleID, excludeBookingID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by vehicle ID",
			zap.Error(err),
			zap.String("vehicle_id", vehicleID.String()),
		)
		return 0, fmt.Errorf("count bookings by vehicle ID %s: %w", vehicleID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET customer_id = $2, start_date = $3, end_date = $4, total_amount = $5, status = $6,
		    pickup_location = $7, dropoff_location = $8, special_requests = $9, insurance = $10,
		    mileage_policy = $11, fuel_policy = $12, insurance_add_on = $13, gps_add_on = $14,
		    child_seat_add_on = $15, temp_name = $16, temp_email = $17, temp_phone = $18, updated_at = $19
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.CustomerID,
		booking.StartDate,
		booking.EndDate,
		booking.TotalAmount,
		booking.Status,
		booking.PickupLocation,
		booking.DropoffLocation,
		booking.SpecialRequests,
		booking.Insurance,
		booking.MileagePolicy,
		booking.FuelPolicy,
		booking.InsuranceAddOn,
		booking.GPSAddOn,
		booking.ChildSeatAddOn,
		booking.TempName,
		booking.TempEmail,
		booking.TempPhone,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

func (r *bookingRepository) FindUpcomingReminders(ctx context.Context, from, to time.Time) ([]*BookingReminder, error) {
	query := `
		SELECT b.id, b.start_date, b.end_date,
		       v.year || ' ' || v.make || ' ' || v.model AS vehicle,
		       COALESCE(c.email, b.temp_email, '') AS email,
		       COALESCE(c.first_name || ' ' || c.last_name, b.temp_name, '') AS name
		FROM bookings b
		JOIN vehicles v ON v.id = b.vehicle_id
		LEFT JOIN customers c ON c.id = b.customer_id
		WHERE b.start_date >= $1 AND b.start_date <= $2
		ORDER BY b.start_date
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to find upcoming booking reminders", zap.Error(err))
		return nil, fmt.Errorf("find upcoming booking reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*BookingReminder
	for rows.Next() {
		var reminder BookingReminder
		err := rows.Scan(
			&reminder.BookingID,
			&reminder.StartDate,
			&reminder.EndDate,
			&reminder.Vehicle,
			&reminder.Email,
			&reminder.Name,
		)
		if err != nil {
			r.log.Error("Failed to scan reminder row", zap.Error(err))
			return nil, fmt.Errorf("scan reminder row: %w", err)
		}
		reminders = append(reminders, &reminder)
	}

	return reminders, nil
}

func (r *bookingRepository) queryBookings(ctx context.Context, query, operation string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+operation, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}
