package components

import (
	"reimburse-api/internal/infra/repository"
	"reimburse-api/internal/infra/storage"
	"reimburse-api/internal/usecase/commands"
	"reimburse-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			repository.NewFormRepository,
			fx.As(new(commands.FormRepository)),
			fx.As(new(queries.FormReader)),
		),
		fx.Annotate(
			repository.NewSubmissionRepository,
			fx.As(new(commands.SubmissionRepository)),
			fx.As(new(queries.SubmissionReader)),
		),
		fx.Annotate(
			repository.NewDocumentRepository,
			fx.As(new(commands.DocumentRepository)),
			fx.As(new(queries.DocumentReader)),
		),
		fx.Annotate(
			repository.NewAccessLinkRepository,
			fx.As(new(commands.AccessLinkRepository)),
		),
		fx.Annotate(
			repository.NewAuditRepository,
			fx.As(new(commands.AuditWriter)),
			fx.As(new(queries.AuditSearcher)),
		),
		fx.Annotate(
			repository.NewACLRepository,
			fx.As(new(commands.ACLStore)),
		),
		fx.Annotate(
			repository.NewOperatorRepository,
			fx.As(new(commands.OperatorRepository)),
		),
		repository.NewAPIKeyRepository,
		fx.Annotate(
			func(store *storage.LocalStore) *storage.LocalStore { return store },
			fx.As(new(commands.BlobStore)),
			fx.As(new(queries.DocumentOpener)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) repository.DBTX {
	return pool
}
