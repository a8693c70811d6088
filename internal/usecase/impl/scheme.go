package impl

import (
	"context"
	"strings"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
)

// SchemeRegistration contributes one login scheme to the orchestrator. Values
// are collected by Fx through the "schemes" group; a nil Handler means the
// scheme is not configured in this deployment.
type SchemeRegistration struct {
	Scheme   entity.Scheme
	Handler  service.SchemeHandler
	Provider service.PreAuthProvider // code schemes only
}

func requireScheme(req *entity.LoginRequest, scheme entity.Scheme) error {
	if req.Scheme() != scheme {
		return errors.Wrapf(domainerrors.ErrSchemeMismatch, "%s handler received a %s request", scheme, req.Scheme())
	}

	return nil
}

type finder func(ctx context.Context, key string) (*entity.User, error)

// findUser runs find and maps the repository miss to ErrUserNotFound.
func findUser(ctx context.Context, find finder, key string) (*entity.User, error) {
	if strings.TrimSpace(key) == "" {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("empty identifier")
	}

	user, err := find(ctx, key)
	if errors.Is(err, repository.ErrUserNotFound) || (err == nil && user == nil) {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("no user for identifier")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}

// findByLogin treats identifiers containing "@" as email addresses and
// everything else as usernames.
func findByLogin(ctx context.Context, users repository.UserRepository, identifier string) (*entity.User, error) {
	if strings.Contains(identifier, "@") {
		return findUser(ctx, users.FindByEmail, identifier)
	}

	return findUser(ctx, users.FindByUsername, identifier)
}
