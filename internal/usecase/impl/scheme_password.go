package impl

import (
	"context"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
)

type passwordHandler struct {
	users  repository.UserRepository
	hasher service.PasswordHasher
}

// NewPasswordScheme registers the PASSWORD scheme.
func NewPasswordScheme(users repository.UserRepository, hasher service.PasswordHasher) SchemeRegistration {
	return SchemeRegistration{
		Scheme:  entity.SchemePassword,
		Handler: &passwordHandler{users: users, hasher: hasher},
	}
}

func (h *passwordHandler) Scheme() entity.Scheme {
	return entity.SchemePassword
}

func (h *passwordHandler) LoadUser(ctx context.Context, req *entity.LoginRequest) (*entity.User, error) {
	if err := requireScheme(req, entity.SchemePassword); err != nil {
		return nil, err
	}

	return findByLogin(ctx, h.users, req.Identifier)
}

func (h *passwordHandler) IsMatched(_ context.Context, req *entity.LoginRequest, user *entity.User) (bool, error) {
	if err := requireScheme(req, entity.SchemePassword); err != nil {
		return false, err
	}
	// Accounts without a local password (directory or Google only) never match.
	if user.PasswordHash == "" || req.Credential == "" {
		return false, nil
	}

	return h.hasher.Check(req.Credential, user.PasswordHash), nil
}
