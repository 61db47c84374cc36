package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is a free-form label shown on the dashboard ("Pending",
// "Confirmed", ...). The enforced state machine lives on the vehicle.
const BookingStatusDefault = "Pending"

type Booking struct {
	Base
	UserID     uuid.UUID  `db:"user_id"`
	VehicleID  uuid.UUID  `db:"vehicle_id"`
	CustomerID *uuid.UUID `db:"customer_id"`

	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	TotalAmount float64   `db:"total_amount"`
	Status      string    `db:"status"`

	PickupLocation  string  `db:"pickup_location"`
	DropoffLocation string  `db:"dropoff_location"`
	SpecialRequests *string `db:"special_requests"`
	Insurance       *string `db:"insurance"`
	MileagePolicy   *string `db:"mileage_policy"`
	FuelPolicy      *string `db:"fuel_policy"`

	// Per-day add-ons selected at booking time; they feed the price.
	InsuranceAddOn bool `db:"insurance_add_on"`
	GPSAddOn       bool `db:"gps_add_on"`
	ChildSeatAddOn bool `db:"child_seat_add_on"`

	// Guest contact, used when no customer record is linked.
	TempName  *string `db:"temp_name"`
	TempEmail *string `db:"temp_email"`
	TempPhone *string `db:"temp_phone"`
}
