package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes backed by mutexed maps. The vehicle fake keeps
// the same compare-and-set semantics as the SQL conditional updates.

type fakeStore struct {
	mu        sync.Mutex
	vehicles  map[uuid.UUID]*entity.Vehicle
	bookings  map[uuid.UUID]*entity.Booking
	customers map[uuid.UUID]*entity.Customer
	users     map[string]*entity.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		vehicles:  make(map[uuid.UUID]*entity.Vehicle),
		bookings:  make(map[uuid.UUID]*entity.Booking),
		customers: make(map[uuid.UUID]*entity.Customer),
		users:     make(map[string]*entity.User),
	}
}

func (s *fakeStore) repo() *repository.Repository {
	return &repository.Repository{
		User:     &fakeUserRepo{s},
		Vehicle:  &fakeVehicleRepo{s},
		Customer: &fakeCustomerRepo{s},
		Booking:  &fakeBookingRepo{s},
	}
}

// fakeTxRunner satisfies TxRunner without transactional rollback; tests
// that need atomicity assert on the store contents instead.
type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) WithTx(ctx context.Context, fn func(r *repository.Repository) error) error {
	return fn(r.store.repo())
}

// ---- vehicle ----

type fakeVehicleRepo struct{ s *fakeStore }

func (f *fakeVehicleRepo) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	copied := *vehicle
	f.s.vehicles[vehicle.ID] = &copied
	return nil
}

func (f *fakeVehicleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.vehicles[id]
	if !ok {
		return nil, nil
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVehicleRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Vehicle, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Vehicle
	for _, v := range f.s.vehicles {
		if v.OwnerID == ownerID {
			copied := *v
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeVehicleRepo) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.vehicles[vehicle.ID]; !ok {
		return fmt.Errorf("vehicle %s not found", vehicle.ID)
	}
	copied := *vehicle
	f.s.vehicles[vehicle.ID] = &copied
	return nil
}

func (f *fakeVehicleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.vehicles, id)
	return nil
}

func (f *fakeVehicleRepo) Rent(ctx context.Context, id uuid.UUID) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.vehicles[id]
	if !ok || v.Status != entity.VehicleStatusAvailable {
		return false, nil
	}
	v.Status = entity.VehicleStatusRented
	return true, nil
}

func (f *fakeVehicleRepo) Release(ctx context.Context, id uuid.UUID) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.vehicles[id]
	if !ok || v.Status != entity.VehicleStatusRented {
		return false, nil
	}
	v.Status = entity.VehicleStatusAvailable
	return true, nil
}

func (f *fakeVehicleRepo) SetStatus(ctx context.Context, id uuid.UUID, status entity.VehicleStatus) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.vehicles[id]
	if !ok {
		return fmt.Errorf("vehicle %s not found", id)
	}
	v.Status = status
	return nil
}

func (f *fakeVehicleRepo) FindRentedWithoutActiveBooking(ctx context.Context) ([]uuid.UUID, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []uuid.UUID
	for id, v := range f.s.vehicles {
		if v.Status != entity.VehicleStatusRented {
			continue
		}
		if !f.s.vehicleHasBookingLocked(id) {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeVehicleRepo) FindAvailableWithActiveBooking(ctx context.Context) ([]uuid.UUID, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []uuid.UUID
	for id, v := range f.s.vehicles {
		if v.Status != entity.VehicleStatusAvailable {
			continue
		}
		if f.s.vehicleHasBookingLocked(id) {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *fakeStore) vehicleHasBookingLocked(vehicleID uuid.UUID) bool {
	for _, b := range s.bookings {
		if b.VehicleID == vehicleID {
			return true
		}
	}
	return false
}

// ---- booking ----

type fakeBookingRepo struct{ s *fakeStore }

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	copied := *booking
	f.s.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) FindDetailByID(ctx context.Context, id uuid.UUID) (*repository.BookingDetail, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.bookings[id]
	if !ok {
		return nil, nil
	}
	detail := &repository.BookingDetail{Booking: *b}
	if v, ok := f.s.vehicles[b.VehicleID]; ok {
		copied := *v
		detail.Vehicle = &copied
	}
	if b.CustomerID != nil {
		if c, ok := f.s.customers[*b.CustomerID]; ok {
			copied := *c
			detail.Customer = &copied
		}
	}
	return detail, nil
}

func (f *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.s.bookings {
		if b.UserID == userID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.Booking, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.s.bookings {
		if b.CustomerID != nil && *b.CustomerID == customerID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindStartingBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Booking, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.s.bookings {
		if b.UserID == userID && !b.StartDate.Before(from) && !b.StartDate.After(to) {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountOthersByVehicleID(ctx context.Context, vehicleID, excludeBookingID uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var count int64
	for id, b := range f.s.bookings {
		if b.VehicleID == vehicleID && id != excludeBookingID {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.bookings[booking.ID]; !ok {
		return fmt.Errorf("booking %s not found", booking.ID)
	}
	copied := *booking
	f.s.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.bookings[id]; !ok {
		return fmt.Errorf("booking %s not found", id)
	}
	delete(f.s.bookings, id)
	return nil
}

func (f *fakeBookingRepo) FindUpcomingReminders(ctx context.Context, from, to time.Time) ([]*repository.BookingReminder, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*repository.BookingReminder
	for id, b := range f.s.bookings {
		if b.StartDate.Before(from) || b.StartDate.After(to) {
			continue
		}
		reminder := &repository.BookingReminder{
			BookingID: id,
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
		}
		if b.TempEmail != nil {
			reminder.Email = *b.TempEmail
		}
		if b.TempName != nil {
			reminder.Name = *b.TempName
		}
		out = append(out, reminder)
	}
	return out, nil
}

// ---- customer ----

type fakeCustomerRepo struct{ s *fakeStore }

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	copied := *customer
	f.s.customers[customer.ID] = &copied
	return nil
}

func (f *fakeCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.customers[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCustomerRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Customer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Customer
	for _, c := range f.s.customers {
		if c.UserID == userID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) FindByUserIDWithAggregates(ctx context.Context, userID uuid.UUID) ([]*repository.CustomerWithAggregates, error) {
	customers, _ := f.FindByUserID(ctx, userID)
	out := make([]*repository.CustomerWithAggregates, len(customers))
	for i, c := range customers {
		agg := &repository.CustomerWithAggregates{Customer: *c}
		bookings, _ := (&fakeBookingRepo{f.s}).FindByCustomerID(ctx, c.ID)
		for _, b := range bookings {
			agg.LifetimeSpend += b.TotalAmount
		}
		agg.BookingCount = len(bookings)
		out[i] = agg
	}
	return out, nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.customers[customer.ID]; !ok {
		return fmt.Errorf("customer %s not found", customer.ID)
	}
	copied := *customer
	f.s.customers[customer.ID] = &copied
	return nil
}

func (f *fakeCustomerRepo) UpdateStats(ctx context.Context, id uuid.UUID, status entity.CustomerStatus, totalBookings int) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.customers[id]
	if !ok {
		return fmt.Errorf("customer %s not found", id)
	}
	c.Status = status
	c.TotalBookings = totalBookings
	return nil
}

func (f *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.customers, id)
	return nil
}

// ---- user ----

type fakeUserRepo struct{ s *fakeStore }

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[user.ExternalID]; ok {
		return fmt.Errorf("user %s already exists", user.ExternalID)
	}
	copied := *user
	f.s.users[user.ExternalID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[externalID]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[user.ExternalID]; !ok {
		return fmt.Errorf("user %s not found", user.ExternalID)
	}
	copied := *user
	f.s.users[user.ExternalID] = &copied
	return nil
}

func (f *fakeUserRepo) DeleteByExternalID(ctx context.Context, externalID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.users, externalID)
	return nil
}
