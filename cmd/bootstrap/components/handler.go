package components

import (
	"context"

	"court-booking/internal/handler"
	"court-booking/internal/handler/api"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/ratelimit"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewMemberHandler,
		api.NewBookingHandler,
		api.NewAdminHandler,
		api.NewCatalogHandler,
		middleware.NewAuthMiddleware,
		NewRateLimitStore,
	),
	fx.Invoke(handler.NewRouter),
)

func NewRateLimitStore(lc fx.Lifecycle, cfg config.Config) *ratelimit.Store {
	store := ratelimit.NewStore(cfg.RateLimit.RPS, cfg.RateLimit.Burst, ratelimit.WithIdleTTL(cfg.RateLimit.IdleTTL))

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			store.StartJanitor(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
	return store
}
