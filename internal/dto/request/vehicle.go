package request

type CreateVehicleRequest struct {
	Make      string  `json:"make" validate:"required"`
	Model     string  `json:"model" validate:"required"`
	Year      int     `json:"year" validate:"required,gte=1900,lte=2100"`
	DailyRate float64 `json:"dailyRate" validate:"required,gt=0"`
	Status    string  `json:"status" validate:"omitempty,oneof=Available Rented Maintenance"`
}

type UpdateVehicleRequest struct {
	ID        string   `json:"id" validate:"required,uuid4"`
	Make      *string  `json:"make"`
	Model     *string  `json:"model"`
	Year      *int     `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	DailyRate *float64 `json:"dailyRate" validate:"omitempty,gt=0"`
	Status    *string  `json:"status" validate:"omitempty,oneof=Available Rented Maintenance"`
}
