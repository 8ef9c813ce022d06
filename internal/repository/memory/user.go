package memory

import (
	"context"
	"sync"

	"github.com/dtroode/projectopen-signup/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository keeps users in process memory, keyed by email.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]model.User),
	}
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}

	return user, nil
}

func (r *UserRepository) Create(_ context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return model.User{}, model.ErrEmailTaken
	}
	r.users[user.Email] = user

	return user, nil
}

// Len returns the number of stored users.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users)
}
