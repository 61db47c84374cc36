package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	Base
	VehicleID  uuid.UUID `db:"vehicle_id"`
	ReviewerID uuid.UUID `db:"reviewer_id"`
	Rating     int       `db:"rating"`
	Review     *string   `db:"review"`
}
