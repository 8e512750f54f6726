package bootstrap

import (
	"log/slog"

	"court-booking/internal/infra/tracing"
	"court-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var TracingModule = fx.Module("tracing",
	fx.Invoke(
		InitTracing,
	),
)

func InitTracing(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) error {
	shutdown, err := tracing.Init(cfg.Tracing, logger)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{OnStop: shutdown})
	return nil
}
