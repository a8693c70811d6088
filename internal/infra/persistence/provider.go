// Package persistence selects the user store configured for the service.
package persistence

import (
	"log/slog"

	"passport/config"
	"passport/internal/domain/constants"
	"passport/internal/domain/repository"
	"passport/internal/infra/persistence/memory"
	"passport/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the user store, injected by Fx
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewUserRepository returns the UserRepository selected by store.driver.
func NewUserRepository(params Params) (repository.UserRepository, error) {
	switch params.Config.Store.Driver {
	case constants.StoreDriverMemory, "":
		params.Logger.Info("Using in-memory user store", slog.Int("seeded", len(params.Config.Store.Seed)))

		return memory.NewSeededUserRepository(params.Config), nil

	case constants.StoreDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}
		params.Logger.Info("Using PostgreSQL user store")

		return postgres.NewUserRepository(db), nil

	default:
		return nil, errors.Errorf("unknown store driver: %s", params.Config.Store.Driver)
	}
}
