package repository

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/data/entity"
	"storefront/pkg/apperr"
	"storefront/pkg/database"

	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	ExistsByRole(ctx context.Context, role entity.Role) (bool, error)
}

type userRepository struct {
	db  database.SQLIface
	log *zap.Logger
}

func NewUserRepository(db database.SQLIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// Create inserts a new user and sets user.ID. A taken username is reported
// as a conflict.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (username, password, role)
		VALUES (?, ?, ?)
	`

	result, err := ur.db.Exec(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Role,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("username " + user.Username + " already taken")
		}
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return apperr.Storage("create user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperr.Storage("create user: last insert id", err)
	}
	user.ID = id

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `
		SELECT id, username, password, role
		FROM users
		WHERE id = ?
	`

	var user entity.User
	err := ur.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return nil, apperr.Storage("find user by id", err)
	}

	return &user, nil
}

// FindByUsername matches the handle exactly, case included.
func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `
		SELECT id, username, password, role
		FROM users
		WHERE username = ?
	`

	var user entity.User
	err := ur.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, apperr.Storage("find user by username", err)
	}

	return &user, nil
}

func (ur *userRepository) ExistsByRole(ctx context.Context, role entity.Role) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE role = ?)`

	var exists bool
	if err := ur.db.QueryRow(ctx, query, role).Scan(&exists); err != nil {
		ur.log.Error("Failed to check users by role",
			zap.Error(err),
			zap.Stringer("role", role),
		)
		return false, apperr.Storage("exists user by role", err)
	}

	return exists, nil
}
