package usecase

import (
	"context"
	"testing"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type recordingSender struct {
	sent []string
}

func (s *recordingSender) Send(toName, toEmail, subject, plainText, htmlContent string) error {
	s.sent = append(s.sent, toEmail)
	return nil
}

func newJobFixture(store *fakeStore, sender *recordingSender) JobService {
	config := &utils.Config{}
	config.Jobs.ReminderWindowDays = 5
	return NewJobService(store.repo(), &fakeTxRunner{store}, sender, config, zap.NewNop())
}

func TestReconcileVehicleStatuses(t *testing.T) {
	store := newFakeStore()
	svc := newJobFixture(store, &recordingSender{})

	// Rented with no booking: should be released.
	stale := &entity.Vehicle{Base: entity.Base{ID: uuid.New()}, Status: entity.VehicleStatusRented}
	store.vehicles[stale.ID] = stale

	// Available but still referenced by a booking: should be re-rented.
	missed := &entity.Vehicle{Base: entity.Base{ID: uuid.New()}, Status: entity.VehicleStatusAvailable}
	store.vehicles[missed.ID] = missed
	bookingID := uuid.New()
	store.bookings[bookingID] = &entity.Booking{
		Base:      entity.Base{ID: bookingID},
		VehicleID: missed.ID,
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-03-03"),
	}

	// Consistent rows stay put.
	ok := &entity.Vehicle{Base: entity.Base{ID: uuid.New()}, Status: entity.VehicleStatusMaintenance}
	store.vehicles[ok.ID] = ok

	if err := svc.ReconcileVehicleStatuses(context.Background()); err != nil {
		t.Fatalf("ReconcileVehicleStatuses: %v", err)
	}

	if store.vehicles[stale.ID].Status != entity.VehicleStatusAvailable {
		t.Fatalf("expected stale vehicle released, got %s", store.vehicles[stale.ID].Status)
	}
	if store.vehicles[missed.ID].Status != entity.VehicleStatusRented {
		t.Fatalf("expected missed vehicle re-rented, got %s", store.vehicles[missed.ID].Status)
	}
	if store.vehicles[ok.ID].Status != entity.VehicleStatusMaintenance {
		t.Fatalf("expected untouched vehicle to stay Maintenance, got %s", store.vehicles[ok.ID].Status)
	}
}

func TestSendBookingReminders(t *testing.T) {
	store := newFakeStore()
	sender := &recordingSender{}
	svc := newJobFixture(store, sender)

	email := "driver@example.com"
	soon := uuid.New()
	store.bookings[soon] = &entity.Booking{
		Base:      entity.Base{ID: soon},
		VehicleID: uuid.New(),
		StartDate: time.Now().AddDate(0, 0, 2),
		EndDate:   time.Now().AddDate(0, 0, 4),
		TempEmail: &email,
	}

	// Outside the window: no mail.
	far := uuid.New()
	store.bookings[far] = &entity.Booking{
		Base:      entity.Base{ID: far},
		VehicleID: uuid.New(),
		StartDate: time.Now().AddDate(0, 0, 30),
		EndDate:   time.Now().AddDate(0, 0, 32),
		TempEmail: &email,
	}

	// Inside the window but no contact: skipped.
	anon := uuid.New()
	store.bookings[anon] = &entity.Booking{
		Base:      entity.Base{ID: anon},
		VehicleID: uuid.New(),
		StartDate: time.Now().AddDate(0, 0, 3),
		EndDate:   time.Now().AddDate(0, 0, 5),
	}

	if err := svc.SendBookingReminders(context.Background()); err != nil {
		t.Fatalf("SendBookingReminders: %v", err)
	}

	if len(sender.sent) != 1 || sender.sent[0] != email {
		t.Fatalf("expected exactly one reminder to %s, got %v", email, sender.sent)
	}
}
