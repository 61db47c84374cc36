package request

// AddOns are the per-day extras selected on the booking form.
type AddOns struct {
	Insurance bool `json:"insurance"`
	GPS       bool `json:"gps"`
	ChildSeat bool `json:"childSeat"`
}

type CreateBookingRequest struct {
	VehicleID  string `json:"vehicleId" validate:"required,uuid4"`
	CustomerID string `json:"customerId" validate:"omitempty,uuid4"`
	StartDate  string `json:"startDate" validate:"required"`
	EndDate    string `json:"endDate" validate:"required"`

	// Accepted for client compatibility; the server always recomputes the
	// total from the vehicle's rate.
	TotalAmount float64 `json:"totalAmount"`

	PickupLocation  string  `json:"pickupLocation"`
	DropoffLocation string  `json:"dropoffLocation"`
	SpecialRequests *string `json:"specialRequests"`
	Insurance       *string `json:"insurance"`
	MileagePolicy   *string `json:"mileagePolicy"`
	FuelPolicy      *string `json:"fuelPolicy"`
	AddOns          AddOns  `json:"addOns"`

	// Guest contact when no customer record exists yet.
	TempName  *string `json:"tempName"`
	TempEmail *string `json:"tempEmail" validate:"omitempty,email"`
	TempPhone *string `json:"tempPhone"`
}

// UpdateBookingRequest is a patch: nil fields are left untouched. The
// vehicle cannot be swapped after creation.
type UpdateBookingRequest struct {
	ID         string  `json:"id" validate:"required,uuid4"`
	CustomerID *string `json:"customerId" validate:"omitempty,uuid4"`
	StartDate  *string `json:"startDate"`
	EndDate    *string `json:"endDate"`
	Status     *string `json:"status"`

	PickupLocation  *string `json:"pickupLocation"`
	DropoffLocation *string `json:"dropoffLocation"`
	SpecialRequests *string `json:"specialRequests"`
	Insurance       *string `json:"insurance"`
	MileagePolicy   *string `json:"mileagePolicy"`
	FuelPolicy      *string `json:"fuelPolicy"`
	AddOns          *AddOns `json:"addOns"`

	TempName  *string `json:"tempName"`
	TempEmail *string `json:"tempEmail" validate:"omitempty,email"`
	TempPhone *string `json:"tempPhone"`
}
