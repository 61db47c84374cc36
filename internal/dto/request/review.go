package request

type CreateReviewRequest struct {
	VehicleID string  `json:"vehicleId" validate:"required,uuid4"`
	Rating    int     `json:"rating" validate:"required,gte=1,lte=5"`
	Review    *string `json:"review"`
}

type UpdateReviewRequest struct {
	ID     string  `json:"id" validate:"required,uuid4"`
	Rating *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Review *string `json:"review"`
}
