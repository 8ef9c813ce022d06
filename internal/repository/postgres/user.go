package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/projectopen-signup/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	query := `SELECT id, name, email, address, image_url, password_hash, created_on
			  FROM users WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Address, &user.ImageURL,
		&user.PasswordHash, &user.CreatedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// Create inserts the user unless the email is already registered, in which
// case the unique index turns the insert into a no-op and ErrEmailTaken is returned.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, name, email, address, image_url, password_hash, created_on)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (email) DO NOTHING
			  RETURNING id, name, email, address, image_url, password_hash, created_on`

	var savedUser model.User
	err := r.db.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.Address, user.ImageURL,
		user.PasswordHash, user.CreatedOn,
	).Scan(
		&savedUser.ID, &savedUser.Name, &savedUser.Email, &savedUser.Address,
		&savedUser.ImageURL, &savedUser.PasswordHash, &savedUser.CreatedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}
