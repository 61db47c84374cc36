package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newBookingFixture() (*fakeStore, BookingService, uuid.UUID, *entity.Vehicle) {
	store := newFakeStore()
	svc := NewBookingService(store.repo(), &fakeTxRunner{store}, zap.NewNop())

	userID := uuid.New()
	vehicle := &entity.Vehicle{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		OwnerID:   userID,
		Make:      "Toyota",
		Model:     "Corolla",
		Year:      2021,
		DailyRate: 50,
		Status:    entity.VehicleStatusAvailable,
	}
	store.vehicles[vehicle.ID] = vehicle

	return store, svc, userID, vehicle
}

func (s *fakeStore) addCustomer(userID uuid.UUID) *entity.Customer {
	customer := &entity.Customer{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		UserID:    userID,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Status:    entity.CustomerStatusActive,
	}
	s.customers[customer.ID] = customer
	return customer
}

func TestCreateBookingRentsVehicleAndPrices(t *testing.T) {
	store, svc, userID, vehicle := newBookingFixture()

	resp, err := svc.CreateBooking(context.Background(), userID, &request.CreateBookingRequest{
		VehicleID: vehicle.ID.String(),
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if resp.Days != 2 {
		t.Fatalf("expected 2 days, got %d", resp.Days)
	}
	if resp.TotalAmount != 100 {
		t.Fatalf("expected total 100.00, got %.2f", resp.TotalAmount)
	}
	if resp.Status != entity.BookingStatusDefault {
		t.Fatalf("expected default status, got %q", resp.Status)
	}

	if store.vehicles[vehicle.ID].Status != entity.VehicleStatusRented {
		t.Fatalf("expected vehicle Rented after create, got %s", store.vehicles[vehicle.ID].Status)
	}
	if len(store.bookings) != 1 {
		t.Fatalf("expected 1 booking persisted, got %d", len(store.bookings))
	}
}

func TestCreateBookingAddOnPricing(t *testing.T) {
	_, svc, userID, vehicle := newBookingFixture()

	resp, err := svc.CreateBooking(context.Background(), userID, &request.CreateBookingRequest{
		VehicleID: vehicle.ID.String(),
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
		AddOns:    request.AddOns{Insurance: true, GPS: true, ChildSeat: true},
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// 2*50 + 2*(15+5+10) = 160.
	if resp.TotalAmount != 160 {
		t.Fatalf("expected total 160.00 with add-ons, got %.2f", resp.TotalAmount)
	}
}

func TestCreateBookingUnavailableVehicle(t *testing.T) {
	store, svc, userID, vehicle := newBookingFixture()
	store.vehicles[vehicle.ID].Status = entity.VehicleStatusMaintenance

	_, err := svc.CreateBooking(context.Background(), userID, &request.CreateBookingRequest{
		VehicleID: vehicle.ID.String(),
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
	})
	if !errors.Is(err, ErrVehicleUnavailable) {
		t.Fatalf("expected ErrVehicleUnavailable, got %v", err)
	}
	if len(store.bookings) != 0 {
		t.Fatalf("expected no booking persisted, got %d", len(store.bookings))
	}
}

func TestCreateBookingCrossOwnerVehicle(t *testing.T) {
	_, svc, _, vehicle := newBookingFixture()

	_, err := svc.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		VehicleID: vehicle.ID.String(),
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another owner's vehicle, got %v", err)
	}
}

func TestCreateBookingInvalidDates(t *testing.T) {
	_, svc, userID, vehicle := newBookingFixture()

	_, err := svc.CreateBooking(context.Background(), userID, &request.CreateBookingRequest{
		VehicleID: vehicle.ID.String(),
		StartDate: "2024-03-05",
		EndDate:   "2024-03-01",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for inverted range, got %v", err)
	}
}

func TestCreateBookingConcurrentOnlyOneWins(t *testing.T) {
	_, svc, userID, vehicle := newBookingFixture()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(context.Background(), userID, &request.CreateBookingRequest{
				VehicleID: vehicle.ID.String(),
				StartDate: "2024-03-01",
				EndDate:   "2024-03-03",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, ErrVehicleUnavailable) {
			t.Fatalf("unexpected error from concurrent create: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one concurrent create to win, got %d", succeeded)
	}
}

func TestCreateBookingSyncsCustomerStats(t *testing.T) {
	store, svc, userID, vehicle := newBookingFixture()
	customer := store.addCustomer(userID)

	// Four prior bookings; the fifth promotes the customer to VIP.
	for i := 0; i < 4; i++ {
		id := uuid.New()
		cid := customer.ID
		store.bookings[id] = &entity.Booking{
			Base:       entity.Base{ID: id},
			UserID:     userID,
			VehicleID:  uuid.New(),
			CustomerID: &cid,
			StartDate:  date("2024-01-01"),
			EndDate:    date("2024-01-02"),
		}
	}

	_, err := svc.CreateBooking(context.Background(), userID, &request.CreateBookingRequest{
		VehicleID:  vehicle.ID.String(),
		CustomerID: customer.ID.String(),
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-03",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	got := store.customers[customer.ID]
	if got.Status != entity.CustomerStatusVIP {
		t.Fatalf("expected customer promoted to VIP, got %s", got.Status)
	}
	if got.TotalBookings != 5 {
		t.Fatalf("expected 5 total bookings, got %d", got.TotalBookings)
	}
}

func TestDeleteBookingDemotesVIPBelowThresholds(t *testing.T) {
	store, svc, userID, vehicle := newBookingFixture()
	customer := store.addCustomer(userID)
	customer.Status = entity.CustomerStatusVIP
	customer.TotalBookings = 2

	// Two short bookings; losing one leaves the customer under both VIP
	// thresholds, which drops them back to Active.
	cid := customer.ID
	keep := &entity.Booking{
		Base:       entity.Base{ID: uuid.New()},
		UserID:     userID,
		VehicleID:  uuid.New(),
		CustomerID: &cid,
		StartDate:  date("2024-01-01"),
		EndDate:    date("2024-01-03"),
	}
	doomed := &entity.Booking{
		Base:       entity.Base{ID: uuid.New()},
		UserID:     userID,
		VehicleID:  vehicle.ID,
		CustomerID: &cid,
		StartDate:  date("2024-02-01"),
		EndDate:    date("2024-02-03"),
	}
	store.bookings[keep.ID] = keep
	store.bookings[doomed.ID] = doomed

	if err := svc.DeleteBooking(context.Background(), userID, doomed.ID.String()); err != nil {
		t.Fatalf("DeleteBooking: %v", err)
	}

	got := store.customers[customer.ID]
	if got.Status != entity.CustomerStatusActive {
		t.Fatalf("expected VIP demoted to Active, got %s", got.Status)
	}
	if got.TotalBookings != 1 {
		t.Fatalf("expected 1 total booking, got %d", got.TotalBookings)
	}
}

func TestDeleteBookingReleasesVehicle(t *testing.T) {
	store, svc, userID, vehicle := newBookingFixture()

	resp, err := svc.CreateBooking(context.Background(), userID, &request.CreateBookingRequest{
		VehicleID: vehicle.ID.String(),
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if err := svc.DeleteBooking(context.Background(), userID, resp.ID); err != nil {
		t.Fatalf("DeleteBooking: %v", err)
	}

	if store.vehicles[vehicle.ID].Status != entity.VehicleStatusAvailable {
		t.Fatalf("expected vehicle released, got %s", store.vehicles[vehicle.ID].Status)
	}
	if len(store.bookings) != 0 {
		t.Fatalf("expected booking removed, got %d left", len(store.bookings))
	}
}

func TestDeleteBookingKeepsVehicleWhenOthersRemain(t *testing.T) {
	store, svc, userID, vehicle := newBookingFixture()

	resp, err := svc.CreateBooking(context.Background(), userID, &request.CreateBookingRequest{
		VehicleID: vehicle.ID.String(),
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// A second booking still references the vehicle.
	other := uuid.New()
	store.bookings[other] = &entity.Booking{
		Base:      entity.Base{ID: other},
		UserID:    userID,
		VehicleID: vehicle.ID,
		StartDate: date("2024-04-01"),
		EndDate:   date("2024-04-03"),
	}

	if err := svc.DeleteBooking(context.Background(), userID, resp.ID); err != nil {
		t.Fatalf("DeleteBooking: %v", err)
	}

	if store.vehicles[vehicle.ID].Status != entity.VehicleStatusRented {
		t.Fatalf("expected vehicle to stay Rented while another booking exists, got %s",
			store.vehicles[vehicle.ID].Status)
	}
}

func TestDeleteBookingLeavesMaintenanceVehicle(t *testing.T) {
	store, svc, userID, vehicle := newBookingFixture()

	resp, err := svc.CreateBooking(context.Background(), userID, &request.CreateBookingRequest{
		VehicleID: vehicle.ID.String(),
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// The owner pulled the vehicle into the shop mid-rental. Removing the
	// last booking must not flip it back to Available.
	store.vehicles[vehicle.ID].Status = entity.VehicleStatusMaintenance

	if err := svc.DeleteBooking(context.Background(), userID, resp.ID); err != nil {
		t.Fatalf("DeleteBooking: %v", err)
	}

	if store.vehicles[vehicle.ID].Status != entity.VehicleStatusMaintenance {
		t.Fatalf("expected vehicle kept in Maintenance, got %s", store.vehicles[vehicle.ID].Status)
	}
}

func TestDeleteBookingCrossOwner(t *testing.T) {
	_, svc, userID, vehicle := newBookingFixture()

	resp, err := svc.CreateBooking(context.Background(), userID, &request.CreateBookingRequest{
		VehicleID: vehicle.ID.String(),
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if err := svc.DeleteBooking(context.Background(), uuid.New(), resp.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another owner's booking, got %v", err)
	}
}

func TestUpdateBookingRepricesOnDateChange(t *testing.T) {
	_, svc, userID, vehicle := newBookingFixture()

	created, err := svc.CreateBooking(context.Background(), userID, &request.CreateBookingRequest{
		VehicleID: vehicle.ID.String(),
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	end := "2024-03-06"
	updated, err := svc.UpdateBooking(context.Background(), userID, &request.UpdateBookingRequest{
		ID:      created.ID,
		EndDate: &end,
	})
	if err != nil {
		t.Fatalf("UpdateBooking: %v", err)
	}

	if updated.Days != 5 {
		t.Fatalf("expected 5 days after extension, got %d", updated.Days)
	}
	if updated.TotalAmount != 250 {
		t.Fatalf("expected total 250.00 after extension, got %.2f", updated.TotalAmount)
	}
}

func TestUpdateBookingMovesCustomerLinkage(t *testing.T) {
	store, svc, userID, vehicle := newBookingFixture()
	first := store.addCustomer(userID)
	second := store.addCustomer(userID)

	created, err := svc.CreateBooking(context.Background(), userID, &request.CreateBookingRequest{
		VehicleID:  vehicle.ID.String(),
		CustomerID: first.ID.String(),
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-03",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if store.customers[first.ID].TotalBookings != 1 {
		t.Fatalf("expected first customer at 1 booking, got %d", store.customers[first.ID].TotalBookings)
	}

	secondID := second.ID.String()
	if _, err := svc.UpdateBooking(context.Background(), userID, &request.UpdateBookingRequest{
		ID:         created.ID,
		CustomerID: &secondID,
	}); err != nil {
		t.Fatalf("UpdateBooking: %v", err)
	}

	if store.customers[first.ID].TotalBookings != 0 {
		t.Fatalf("expected first customer back to 0 bookings, got %d", store.customers[first.ID].TotalBookings)
	}
	if store.customers[second.ID].TotalBookings != 1 {
		t.Fatalf("expected second customer at 1 booking, got %d", store.customers[second.ID].TotalBookings)
	}
}
