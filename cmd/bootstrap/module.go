package bootstrap

import (
	"reimburse-api/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	BreakerModule,
	StorageModule,
	ExternalModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
