package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"court-booking/internal/infra/slotstore"
	"court-booking/internal/pkg/config"
	"court-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// StoreModule selects the slot store by STORE_DRIVER. Members and the
// catalog always stay in PostgreSQL.
var StoreModule = fx.Module("store",
	fx.Provide(
		NewSlotStore,
	),
)

func NewSlotStore(lc fx.Lifecycle, cfg config.Config, pool *pgxpool.Pool, logger *slog.Logger) (shared.SlotStore, error) {
	switch cfg.Booking.StoreDriver {
	case config.StoreDriverPostgres:
		return slotstore.NewPostgresStore(pool), nil
	case config.StoreDriverRedis:
		rdb, err := NewRedisClient(lc, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return slotstore.NewRedisStore(rdb, slotstore.WithKeyPrefix(cfg.Redis.Prefix)), nil
	case config.StoreDriverMemory:
		logger.Warn("in-memory slot store selected, bookings are lost on restart")
		return slotstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Booking.StoreDriver)
	}
}

func NewRedisClient(lc fx.Lifecycle, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})

	return rdb, nil
}
