package response

import (
	"time"

	"car-rental/internal/data/entity"
)

type VehicleResponse struct {
	ID        string               `json:"id"`
	Make      string               `json:"make"`
	Model     string               `json:"model"`
	Year      int                  `json:"year"`
	DailyRate float64              `json:"dailyRate"`
	Status    entity.VehicleStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

func VehicleToResponse(v *entity.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:        v.ID.String(),
		Make:      v.Make,
		Model:     v.Model,
		Year:      v.Year,
		DailyRate: v.DailyRate,
		Status:    v.Status,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
