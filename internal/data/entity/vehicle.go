package entity

import (
	"github.com/google/uuid"
)

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "Available"
	VehicleStatusRented      VehicleStatus = "Rented"
	VehicleStatusMaintenance VehicleStatus = "Maintenance"
)

type Vehicle struct {
	Base
	OwnerID   uuid.UUID     `db:"owner_id"`
	Make      string        `db:"make"`
	Model     string        `db:"model"`
	Year      int           `db:"year"`
	DailyRate float64       `db:"daily_rate"`
	Status    VehicleStatus `db:"status"`
}
