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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	DeleteByExternalID(ctx context.Context, externalID string) error
}

type userRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewUserRepository(db database.Querier, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, external_id, email, first_name, last_name, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.ExternalID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, external_id, email, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.ExternalID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("external_id", user.ExternalID),
		)
		return fmt.Errorf("create user %s: %w", user.ExternalID, err)
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (r *userRepository) FindByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE external_id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, externalID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by external ID",
			zap.Error(err),
			zap.String("external_id", externalID),
		)
		return nil, fmt.Errorf("find user by external ID %s: %w", externalID, err)
	}

	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, updated_at = $5
		WHERE external_id = $1
	`

	result, err := r.db.Exec(ctx, query,
		user.ExternalID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("external_id", user.ExternalID),
		)
		return fmt.Errorf("update user %s: %w", user.ExternalID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", user.ExternalID)
	}

	return nil
}

func (r *userRepository) DeleteByExternalID(ctx context.Context, externalID string) error {
	query := `DELETE FROM users WHERE external_id = $1`

	result, err := r.db.Exec(ctx, query, externalID)
	if err != nil {
		r.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("external_id", externalID),
		)
		return fmt.Errorf("delete user %s: %w", externalID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", externalID)
	}

	r.log.Info("User deleted", zap.String("external_id", externalID))
	return nil
}
