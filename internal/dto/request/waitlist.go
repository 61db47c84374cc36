package request

type JoinWaitlistRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
}

type DonationRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Email       string  `json:"email" validate:"omitempty,email"`
	Description string  `json:"description"`
}
