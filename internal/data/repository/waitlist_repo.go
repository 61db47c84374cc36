package repository

import (
	"context"
	"fmt"

	"car-rental/internal/data/entity"
	"car-rental/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type WaitlistRepository interface {
	Create(ctx context.Context, entry *entity.WaitlistEntry) error
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	FindAll(ctx context.Context) ([]*entity.WaitlistEntry, error)
}

type waitlistRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewWaitlistRepository(db database.Querier, log *zap.Logger) WaitlistRepository {
	return &waitlistRepository{
		db:  db,
		log: log.With(zap.String("repository", "waitlist")),
	}
}

func (r *waitlistRepository) Create(ctx context.Context, entry *entity.WaitlistEntry) error {
	query := `
		INSERT INTO waitlist (id, first_name, last_name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.FirstName,
		entry.LastName,
		entry.Email,
		entry.Phone,
		entry.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create waitlist entry",
			zap.Error(err),
			zap.String("email", entry.Email),
		)
		return fmt.Errorf("create waitlist entry %s: %w", entry.Email, err)
	}

	return nil
}

func (r *waitlistRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	query := `SELECT 1 FROM waitlist WHERE email = $1 OR phone = $2 LIMIT 1`

	var one int
	err := r.db.QueryRow(ctx, query, email, phone).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		r.log.Error("Failed to check waitlist duplicate",
			zap.Error(err),
			zap.String("email", email),
		)
		return false, fmt.Errorf("check waitlist duplicate for %s: %w", email, err)
	}

	return true, nil
}

func (r *waitlistRepository) FindAll(ctx context.Context) ([]*entity.WaitlistEntry, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, created_at
		FROM waitlist
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list waitlist", zap.Error(err))
		return nil, fmt.Errorf("list waitlist: %w", err)
	}
	defer rows.Close()

	var entries []*entity.WaitlistEntry
	for rows.Next() {
		var entry entity.WaitlistEntry
		err := rows.Scan(
			&entry.ID,
			&entry.FirstName,
			&entry.LastName,
			&entry.Email,
			&entry.Phone,
			&entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan waitlist row", zap.Error(err))
			return nil, fmt.Errorf("scan waitlist row: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}
