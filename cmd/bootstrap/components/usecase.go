package components

import (
	"context"
	"time"

	"reimburse-api/internal/pkg/clock"
	"reimburse-api/internal/pkg/config"
	"reimburse-api/internal/usecase/commands"
	"reimburse-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	fx.Invoke(registerAuditShutdown),
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) commands.FormWorkflowConfig {
		return commands.FormWorkflowConfig{
			TTL:            time.Duration(cfg.Form.ExpirationHours) * time.Hour,
			MaxFileSize:    cfg.Upload.MaxFileSize,
			BaseURL:        cfg.Server.BaseURL,
			OrganizationID: cfg.External.OrganizationID,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewFormCommands,
		commands.NewDocumentCommands,
		commands.NewAccessLinkCommands,
		commands.NewACLCommands,
		commands.NewAuditCommands,
		commands.NewAuthCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewFormQueries,
		queries.NewSubmissionQueries,
		queries.NewAuditQueries,
	),
)

// registerAuditShutdown drains deferred audit writes before the process exits.
func registerAuditShutdown(lc fx.Lifecycle, auditCmds commands.AuditCommands) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			auditCmds.Wait()
			return nil
		},
	})
}
