package bootstrap

import (
	"log/slog"

	"reimburse-api/internal/infra/external"
	"reimburse-api/internal/pkg/breaker"
	"reimburse-api/internal/pkg/clock"
	"reimburse-api/internal/pkg/config"

	"go.uber.org/fx"
)

var BreakerModule = fx.Module("breaker",
	fx.Provide(
		NewOrderBreaker,
	),
)

// NewOrderBreaker builds the single breaker instance guarding the external
// order API. Request-caused 4xx responses bypass failure counting.
func NewOrderBreaker(cfg config.Config, clk clock.Clock, logger *slog.Logger) *breaker.Breaker {
	return breaker.New("order-api", breaker.Settings{
		FailureThreshold: cfg.Breaker.FailureThreshold,
		RecoveryTimeout:  cfg.Breaker.RecoveryTimeout,
		HalfOpenMaxCalls: cfg.Breaker.HalfOpenMaxCalls,
		Excluded:         external.IsExcluded,
	}, clk, logger)
}
