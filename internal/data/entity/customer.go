package entity

import (
	"github.com/google/uuid"
)

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "Active"
	CustomerStatusVIP      CustomerStatus = "VIP"
	CustomerStatusInactive CustomerStatus = "Inactive"
)

type Customer struct {
	Base
	UserID    uuid.UUID      `db:"user_id"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	Email     string         `db:"email"`
	Phone     string         `db:"phone"`
	Status    CustomerStatus `db:"status"`
	// TotalBookings is denormalized; kept in sync by the stats recompute
	// that runs with every booking mutation.
	TotalBookings int `db:"total_bookings"`
}
