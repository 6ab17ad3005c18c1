// Package persistence selects the account store named by store.driver.
package persistence

import (
	"log/slog"

	"accounts/config"
	"accounts/internal/domain/repository"
	"accounts/internal/infra/persistence/memory"
	mongostore "accounts/internal/infra/persistence/mongo"
	"accounts/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewAccountRepository builds the configured store. Connections are opened
// and verified in the lifecycle hooks registered by the driver packages.
func NewAccountRepository(params Params) (repository.AccountRepository, error) {
	driver := params.Config.Store.Driver
	logger := params.Logger.With(slog.String("store", driver))

	switch driver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory account store, data is lost on restart")

		return memory.NewAccountRepository(), nil
	case config.StoreDriverMongo, "":
		collection, err := mongostore.New(mongostore.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    logger,
		})
		if err != nil {
			return nil, err
		}

		return mongostore.NewAccountRepository(collection, logger), nil
	case config.StoreDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    logger,
		})
		if err != nil {
			return nil, err
		}

		return postgres.NewAccountRepository(db), nil
	default:
		return nil, errors.Errorf("unsupported store driver %q", driver)
	}
}
