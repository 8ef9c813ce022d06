package model

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by stores when a lookup matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned by UserStore.Create when a user with the same email exists.
	ErrEmailTaken = errors.New("email already registered")
)

// UserStore defines persistence operations for users.
//
// Create must be conditional: it stores the user only if no user with the
// same email exists and returns ErrEmailTaken otherwise.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a registered user.
type User struct {
	ID           string
	Name         string
	Email        string
	Address      string
	ImageURL     string
	PasswordHash string
	CreatedOn    time.Time
}

// CreatedOnLayout is the ISO-8601 layout used for stored and returned creation timestamps.
const CreatedOnLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatCreatedOn renders t in CreatedOnLayout, always in UTC.
func FormatCreatedOn(t time.Time) string {
	return t.UTC().Format(CreatedOnLayout)
}
