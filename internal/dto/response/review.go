package response

import (
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
)

type ReviewResponse struct {
	ID           string    `json:"id"`
	VehicleID    string    `json:"vehicleId"`
	Rating       int       `json:"rating"`
	Review       *string   `json:"review,omitempty"`
	ReviewerName string    `json:"reviewerName,omitempty"`
	VehicleName  string    `json:"vehicleName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func ReviewToResponse(r *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID.String(),
		VehicleID: r.VehicleID.String(),
		Rating:    r.Rating,
		Review:    r.Review,
		CreatedAt: r.CreatedAt,
	}
}

func ReviewWithNamesToResponse(r *repository.ReviewWithNames) ReviewResponse {
	resp := ReviewToResponse(&r.Review)
	resp.ReviewerName = r.ReviewerName
	resp.VehicleName = r.VehicleName
	return resp
}
