package repository

import (
	"context"
	"fmt"

	"car-rental/internal/data/entity"
	"car-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CustomerWithAggregates carries the read-time aggregates the customer list
// exposes next to the denormalized fields.
type CustomerWithAggregates struct {
	entity.Customer
	LifetimeSpend float64
	BookingCount  int
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Customer, error)
	FindByUserIDWithAggregates(ctx context.Context, userID uuid.UUID) ([]*CustomerWithAggregates, error)
	Update(ctx context.Context, customer *entity.Customer) error
	UpdateStats(ctx context.Context, id uuid.UUID, status entity.CustomerStatus, totalBookings int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCustomerRepository(db database.Querier, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

const customerColumns = `id, user_id, first_name, last_name, email, phone, status, total_bookings, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var customer entity.Customer
	err := row.Scan(
		&customer.ID,
		&customer.UserID,
		&customer.FirstName,
		&customer.LastName,
		&customer.Email,
		&customer.Phone,
		&customer.Status,
		&customer.TotalBookings,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, user_id, first_name, last_name, email, phone, status, total_bookings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.UserID,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.Phone,
		customer.Status,
		customer.TotalBookings,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("user_id", customer.UserID.String()),
			zap.String("email", customer.Email),
		)
		return fmt.Errorf("create customer %s: %w", customer.Email, err)
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by ID",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return nil, fmt.Errorf("find customer by ID %s: %w", id.String(), err)
	}

	return customer, nil
}

func (r *customerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find customers by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find customers by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			r.log.Error("Failed to scan customer row", zap.Error(err))
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}

	return customers, nil
}

func (r *customerRepository) FindByUserIDWithAggregates(ctx context.Context, userID uuid.UUID) ([]*CustomerWithAggregates, error) {
	query := `
		SELECT c.id, c.user_id, c.first_name, c.last_name, c.email, c.phone, c.status,
		       c.total_bookings, c.created_at, c.updated_at,
		       COALESCE(SUM(b.total_amount), 0) AS lifetime_spend,
		       COUNT(b.id) AS booking_count
		FROM customers c
		LEFT JOIN bookings b ON b.customer_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find customers with aggregates",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find customers with aggregates for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var customers []*CustomerWithAggregates
	for rows.Next() {
		var c CustomerWithAggregates
		err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.FirstName,
			&c.LastName,
			&c.Email,
			&c.Phone,
			&c.Status,
			&c.TotalBookings,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.LifetimeSpend,
			&c.BookingCount,
		)
		if err != nil {
			r.log.Error("Failed to scan customer aggregate row", zap.Error(err))
			return nil, fmt.Errorf("scan customer aggregate row: %w", err)
		}
		customers = append(customers, &c)
	}

	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $2, last_name = $3, email = $4, phone = $5, status = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.Phone,
		customer.Status,
		customer.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID.String()),
		)
		return fmt.Errorf("update customer %s: %w", customer.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s not found", customer.ID.String())
	}

	return nil
}

func (r *customerRepository) UpdateStats(ctx context.Context, id uuid.UUID, status entity.CustomerStatus, totalBookings int) error {
	query := `UPDATE customers SET status = $2, total_bookings = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status, totalBookings)
	if err != nil {
		r.log.Error("Failed to update customer stats",
			zap.Error(err),
			zap.String("customer_id", id.String()),
			zap.String("status", string(status)),
			zap.Int("total_bookings", totalBookings),
		)
		return fmt.Errorf("update customer %s stats: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s not found", id.String())
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM customers WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete customer",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return fmt.Errorf("delete customer %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s not found", id.String())
	}

	r.log.Info("Customer deleted", zap.String("customer_id", id.String()))
	return nil
}
