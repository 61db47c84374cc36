package repository

import (
	"context"
	"errors"

	"car-rental/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Vehicle  VehicleRepository
	Customer CustomerRepository
	Booking  BookingRepository
	Review   ReviewRepository
	Waitlist WaitlistRepository
}

func NewRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(q, log),
		Vehicle:  NewVehicleRepository(q, log),
		Customer: NewCustomerRepository(q, log),
		Booking:  NewBookingRepository(q, log),
		Review:   NewReviewRepository(q, log),
		Waitlist: NewWaitlistRepository(q, log),
	}
}

// TxManager rebinds the whole repository bundle to a single transaction so
// multi-record mutations commit or roll back together.
type TxManager struct {
	db  *database.DB
	log *zap.Logger
}

func NewTxManager(db *database.DB, log *zap.Logger) *TxManager {
	return &TxManager{db: db, log: log}
}

func (m *TxManager) WithTx(ctx context.Context, fn func(r *Repository) error) error {
	return m.db.WithTx(ctx, func(q database.Querier) error {
		return fn(NewRepository(q, m.log))
	})
}

// IsUniqueViolation reports whether err is a Postgres duplicate-key error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
