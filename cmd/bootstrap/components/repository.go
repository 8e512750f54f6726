package components

import (
	"court-booking/internal/infra/db"
	"court-booking/internal/infra/directory"
	"court-booking/internal/infra/readstore"
	repo_impl "court-booking/internal/infra/repository"
	"court-booking/internal/infra/uow"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			repo_impl.NewMemberRepository,
			fx.As(new(shared.MemberRepository)),
		),
		fx.Annotate(
			repo_impl.NewNotificationRepository,
			fx.As(new(shared.NotificationRepository)),
		),
		fx.Annotate(
			repo_impl.NewCatalogRepository,
			fx.As(new(shared.Catalog)),
		),
		fx.Annotate(
			directory.New,
			fx.As(new(shared.MemberDirectory)),
		),
		// Read-side store for queries
		fx.Annotate(
			readstore.NewMemberReadStore,
			fx.As(new(queries.MemberReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
