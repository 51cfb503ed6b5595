package bootstrap

import (
	"reimburse-api/internal/infra/storage"
	"reimburse-api/internal/pkg/config"

	"go.uber.org/fx"
)

var StorageModule = fx.Module("storage",
	fx.Provide(
		NewLocalStore,
	),
)

func NewLocalStore(cfg config.Config) (*storage.LocalStore, error) {
	return storage.NewLocalStore(cfg.Upload.Dir)
}
