package response

import (
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
)

type CustomerResponse struct {
	ID            string                `json:"id"`
	FirstName     string                `json:"firstName"`
	LastName      string                `json:"lastName"`
	Email         string                `json:"email"`
	Phone         string                `json:"phone,omitempty"`
	Status        entity.CustomerStatus `json:"status"`
	TotalBookings int                   `json:"totalBookings"`
	LifetimeSpend float64               `json:"lifetimeSpend"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

func CustomerToResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID.String(),
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Email:         c.Email,
		Phone:         c.Phone,
		Status:        c.Status,
		TotalBookings: c.TotalBookings,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func CustomerAggregateToResponse(c *repository.CustomerWithAggregates) CustomerResponse {
	resp := CustomerToResponse(&c.Customer)
	resp.LifetimeSpend = c.LifetimeSpend
	resp.TotalBookings = c.BookingCount
	return resp
}
