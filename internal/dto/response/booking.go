package response

import (
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
)

type BookingResponse struct {
	ID          string  `json:"id"`
	VehicleID   string  `json:"vehicleId"`
	CustomerID  *string `json:"customerId,omitempty"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Days        int     `json:"days"`
	TotalAmount float64 `json:"totalAmount"`
	Status      string  `json:"status"`

	PickupLocation  string  `json:"pickupLocation"`
	DropoffLocation string  `json:"dropoffLocation"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
	Insurance       *string `json:"insurance,omitempty"`
	MileagePolicy   *string `json:"mileagePolicy,omitempty"`
	FuelPolicy      *string `json:"fuelPolicy,omitempty"`

	InsuranceAddOn bool `json:"insuranceAddOn"`
	GPSAddOn       bool `json:"gpsAddOn"`
	ChildSeatAddOn bool `json:"childSeatAddOn"`

	TempName  *string `json:"tempName,omitempty"`
	TempEmail *string `json:"tempEmail,omitempty"`
	TempPhone *string `json:"tempPhone,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type BookingDetailResponse struct {
	BookingResponse
	Vehicle  *VehicleResponse  `json:"vehicle,omitempty"`
	Customer *CustomerResponse `json:"customer,omitempty"`
}

func BookingToResponse(b *entity.Booking, days int) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID.String(),
		VehicleID:       b.VehicleID.String(),
		StartDate:       b.StartDate.Format("2006-01-02"),
		EndDate:         b.EndDate.Format("2006-01-02"),
		Days:            days,
		TotalAmount:     b.TotalAmount,
		Status:          b.Status,
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		SpecialRequests: b.SpecialRequests,
		Insurance:       b.Insurance,
		MileagePolicy:   b.MileagePolicy,
		FuelPolicy:      b.FuelPolicy,
		InsuranceAddOn:  b.InsuranceAddOn,
		GPSAddOn:        b.GPSAddOn,
		ChildSeatAddOn:  b.ChildSeatAddOn,
		TempName:        b.TempName,
		TempEmail:       b.TempEmail,
		TempPhone:       b.TempPhone,
		CreatedAt:       b.CreatedAt,
	}

	if b.CustomerID != nil {
		id := b.CustomerID.String()
		resp.CustomerID = &id
	}

	return resp
}

func BookingDetailToResponse(d *repository.BookingDetail, days int) BookingDetailResponse {
	resp := BookingDetailResponse{
		BookingResponse: BookingToResponse(&d.Booking, days),
	}

	if d.Vehicle != nil {
		v := VehicleToResponse(d.Vehicle)
		resp.Vehicle = &v
	}
	if d.Customer != nil {
		c := CustomerToResponse(d.Customer)
		resp.Customer = &c
	}

	return resp
}
