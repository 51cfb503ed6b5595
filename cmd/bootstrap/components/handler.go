package components

import (
	"context"

	"reimburse-api/internal/handler"
	"reimburse-api/internal/handler/api"
	"reimburse-api/internal/handler/middleware"
	"reimburse-api/internal/infra/repository"
	"reimburse-api/internal/pkg/config"
	"reimburse-api/internal/usecase/commands"
	"reimburse-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewFormHandler,
		api.NewDocumentAccessHandler,
		NewAuthHandler,
		api.NewAuditHandler,
		api.NewACLHandler,
		middleware.NewAuthMiddleware,
		NewAPIKeyMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewFormHandler(cmds commands.FormCommands, q queries.FormQueries, auditCmds commands.AuditCommands, cfg config.Config) *api.FormHandler {
	return api.NewFormHandler(cmds, q, auditCmds, cfg.Upload.MaxFileSize)
}

func NewAuthHandler(cmds commands.AuthCommands, auditCmds commands.AuditCommands, cfg config.Config) *api.AuthHandler {
	return api.NewAuthHandler(cmds, auditCmds, cfg.JWT, cfg.Cookie)
}

func NewAPIKeyMiddleware(repo *repository.APIKeyRepository) *middleware.APIKeyMiddleware {
	return middleware.NewAPIKeyMiddleware(apiKeyLookup{repo: repo})
}

func NewHandlers(
	form *api.FormHandler,
	docAccess *api.DocumentAccessHandler,
	auth *api.AuthHandler,
	audit *api.AuditHandler,
	acl *api.ACLHandler,
) handler.Handlers {
	return handler.Handlers{
		Form:           form,
		DocumentAccess: docAccess,
		Auth:           auth,
		Audit:          audit,
		ACL:            acl,
	}
}

// apiKeyLookup adapts the repository record to the middleware's view of an
// api key.
type apiKeyLookup struct {
	repo *repository.APIKeyRepository
}

func (a apiKeyLookup) FindActiveByHash(ctx context.Context, keyHash string) (*middleware.APIKeyRecord, error) {
	k, err := a.repo.FindActiveByHash(ctx, keyHash)
	if err != nil {
		return nil, err
	}
	return &middleware.APIKeyRecord{ID: k.ID, Name: k.Name}, nil
}
