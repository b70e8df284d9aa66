package memory

import (
	"context"
	"strings"
	"sync"

	"healthboard/internal/domain/entity"
	domainerrors "healthboard/internal/domain/errors"
	"healthboard/internal/domain/repository"

	"github.com/google/uuid"
)

// UserStore is the in-memory account registry. It doubles as the identity
// resolver for the watch sync key path via FindByEmail.
type UserStore struct {
	mu    sync.Mutex
	users []entity.User
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{}
}

var _ repository.UserRepository = (*UserStore)(nil)

// Create stores a new user, rejecting duplicate emails case-insensitively.
func (s *UserStore) Create(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domainerrors.ErrUserAlreadyExists
		}
	}

	s.users = append(s.users, *user)

	return nil
}

// FindByID returns a detached copy of the user with the given id, or nil.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			result := u

			return &result, nil
		}
	}

	return nil, nil
}

// FindByEmail resolves a user by email, case-insensitively, or returns nil.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			result := u

			return &result, nil
		}
	}

	return nil, nil
}
