package bootstrap

import (
	"log/slog"

	"reimburse-api/internal/infra/external"
	"reimburse-api/internal/infra/identity"
	"reimburse-api/internal/pkg/breaker"
	"reimburse-api/internal/pkg/config"
	"reimburse-api/internal/usecase/commands"

	"go.uber.org/fx"
)

var ExternalModule = fx.Module("external",
	fx.Provide(
		fx.Annotate(
			NewOrderGateway,
			fx.As(new(commands.OrderGateway)),
		),
		fx.Annotate(
			NewIdentityVerifier,
			fx.As(new(commands.IdentityVerifier)),
		),
	),
)

func NewOrderGateway(cfg config.Config, cb *breaker.Breaker, logger *slog.Logger) *external.OrderClient {
	return external.NewOrderClient(cfg.External, cb, logger)
}

func NewIdentityVerifier(cfg config.Config) *identity.HTTPVerifier {
	return identity.NewHTTPVerifier(cfg.JWT.IdentityVerifyURL)
}
