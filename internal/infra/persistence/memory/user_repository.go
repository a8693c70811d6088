// Package memory contains an in-process UserRepository for local runs and tests.
package memory

import (
	"context"
	"maps"
	"strings"
	"sync"
	"time"

	"passport/config"
	"passport/internal/domain/entity"
	"passport/internal/domain/repository"

	"github.com/google/uuid"
)

// UserRepository keeps users in maps guarded by a RWMutex.
type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entity.User
}

// NewUserRepository creates a repository holding users.
func NewUserRepository(users ...*entity.User) *UserRepository {
	repo := &UserRepository{users: make(map[uuid.UUID]*entity.User)}
	for _, user := range users {
		repo.Add(user)
	}

	return repo
}

// NewSeededUserRepository builds the repository from the configured seed accounts.
func NewSeededUserRepository(cfg *config.Config) repository.UserRepository {
	repo := NewUserRepository()
	for _, seed := range cfg.Store.Seed {
		repo.Add(&entity.User{
			Username:     seed.Username,
			Email:        strings.ToLower(seed.Email),
			Phone:        seed.Phone,
			PasswordHash: seed.PasswordHash,
			Roles:        entity.RolesFromStrings(seed.Roles),
		})
	}

	return repo
}

// Add stores a copy of user, assigning an ID when it has none.
func (r *UserRepository) Add(user *entity.User) *entity.User {
	stored := copyUser(user)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
		stored.UpdatedAt = stored.CreatedAt
	}

	r.mu.Lock()
	r.users[stored.ID] = stored
	r.mu.Unlock()

	return copyUser(stored)
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return copyUser(user), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.findBy(func(u *entity.User) bool { return email != "" && strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.findBy(func(u *entity.User) bool { return username != "" && strings.EqualFold(u.Username, username) })
}

func (r *UserRepository) FindByPhone(_ context.Context, phone string) (*entity.User, error) {
	return r.findBy(func(u *entity.User) bool { return phone != "" && u.Phone == phone })
}

func (r *UserRepository) SetAttribute(_ context.Context, id uuid.UUID, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.SetAttr(key, value)
	user.UpdatedAt = time.Now()

	return nil
}

func (r *UserRepository) findBy(match func(*entity.User) bool) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if match(user) {
			return copyUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func copyUser(user *entity.User) *entity.User {
	out := *user
	out.Roles = append(entity.Roles(nil), user.Roles...)
	out.Groups = append([]string(nil), user.Groups...)
	if user.Extension != nil {
		out.Extension = maps.Clone(user.Extension)
	}

	return &out
}
