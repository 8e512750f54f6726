//go:build e2e

package e2e

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"court-booking/cmd/bootstrap"
	"court-booking/cmd/bootstrap/components"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/config"
	"court-booking/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	// Bookings are dated in the club's zone; the server uses it too so that
	// CURRENT_DATE in ad-hoc queries matches.
	bookingZone = "Europe/Vienna"
)

// sharedContainer is started once per test binary and reused by every suite.
type sharedContainer struct {
	once      sync.Once
	container testcontainers.Container
	err       error
	request   testcontainers.ContainerRequest
	port      nat.Port
}

// endpoint starts the container on first use and returns its mapped host and port.
func (c *sharedContainer) endpoint(t *testing.T) (string, string) {
	t.Helper()

	c.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		c.container, c.err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: c.request,
			Started:          true,
		})
	})
	require.NoError(t, c.err, "%sコンテナの起動に失敗", c.request.Name)

	ctx := context.Background()
	host, err := c.container.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.container.MappedPort(ctx, c.port)
	require.NoError(t, err)
	return host, mapped.Port()
}

var postgresContainer = &sharedContainer{
	port: "5432/tcp",
	request: testcontainers.ContainerRequest{
		Name:         "court-booking-postgres-e2e",
		Image:        "postgres:17",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     pgUser,
			"POSTGRES_PASSWORD": pgPassword,
			"POSTGRES_DB":       "postgres",
			"TZ":                bookingZone,
			"PGTZ":              bookingZone,
		},
		// データはRAM上、耐久性は不要
		Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
		Cmd: []string{
			"postgres",
			"-c", "fsync=off",
			"-c", "synchronous_commit=off",
			"-c", "full_page_writes=off",
			"-c", "max_connections=200",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
			return adminDSN(host, port.Port())
		}).WithStartupTimeout(time.Minute),
		Labels: map[string]string{"purpose": "e2e-tests"},
	},
}

var redisContainer = &sharedContainer{
	port: "6379/tcp",
	request: testcontainers.ContainerRequest{
		Name:         "court-booking-redis-e2e",
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(time.Minute),
		Labels:       map[string]string{"purpose": "e2e-tests"},
	},
}

func adminDSN(host, port string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", pgUser, pgPassword, host, port)
}

// setupE2EEnvironment gives each suite its own database (and Redis key prefix)
// on the shared containers, and an application wired with storeDriver.
func setupE2EEnvironment(t *testing.T, storeDriver string) (*pgxpool.Pool, *gin.Engine, config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	cfg.DB = createDatabase(t)
	cfg.Booking.StoreDriver = storeDriver
	if storeDriver == config.StoreDriverRedis {
		cfg.Redis = prepareRedis(t)
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	require.NoError(t, err, "データベース接続に失敗")
	t.Cleanup(cleanup)

	require.NoError(t, applyMigrations(pool), "マイグレーションに失敗")
	require.NoError(t, dbtest.SeedReferenceData(pool), "参照データの投入に失敗")

	router, app, err := buildE2EApp(pool, cfg)
	require.NoError(t, err, "fxアプリケーションの起動に失敗")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})

	return pool, router, cfg
}

// createDatabase creates a uniquely named database and drops it after the suite.
func createDatabase(t *testing.T) config.DBConfig {
	t.Helper()

	host, port := postgresContainer.endpoint(t)
	name := "court_booking_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, adminDSN(host, port))
	require.NoError(t, err, "管理者接続に失敗")
	defer admin.Close()

	// 並列スイートのCREATE DATABASEはテンプレートのロックで衝突することがある
	err = retry(ctx, 5, 500*time.Millisecond, func() error {
		_, err := admin.Exec(ctx, "CREATE DATABASE "+name)
		return err
	})
	require.NoError(t, err, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, adminDSN(host, port))
		if err != nil {
			slog.Warn("クリーンアップ用の接続に失敗しました", "database", name, "error", err.Error())
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", name, "error", err.Error())
		}
	})

	return config.DBConfig{
		Host:     host,
		Port:     port,
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: bookingZone,
		MaxConns: 20,
	}
}

// retry runs fn up to attempts times with a linearly growing pause.
func retry(ctx context.Context, attempts int, step time.Duration, fn func() error) error {
	var err error
	for i := range attempts {
		if err = fn(); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(time.Duration(i+1) * step):
		}
	}
	return err
}

// applyMigrations runs every migrations/*.sql in name order.
func applyMigrations(pool *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(root, "migrations", "*.sql"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations found under %s", root)
	}
	sort.Strings(files)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, f := range files {
		sqlText, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, string(sqlText)); err != nil {
			return fmt.Errorf("migration %s: %w", filepath.Base(f), err)
		}
	}
	return nil
}

// repoRoot walks up from the package directory to the directory holding go.mod.
func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found above the test directory")
		}
		dir = parent
	}
}

// buildE2EApp wires the production modules around the suite's pool and config.
func buildE2EApp(pool *pgxpool.Pool, cfg config.Config) (*gin.Engine, *fx.App, error) {
	var router *gin.Engine

	app := fx.New(
		fx.Supply(pool, cfg),
		fx.Provide(bootstrap.NewBookingLocation),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.TracingModule,
		bootstrap.StoreModule,
		bootstrap.MessagingModule,
		bootstrap.JWTModule,
		components.RepositoryModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		return nil, nil, err
	}
	return router, app, nil
}

// prepareRedis points the suite at the shared Redis with its own key prefix.
func prepareRedis(t *testing.T) config.RedisConfig {
	t.Helper()
	host, port := redisContainer.endpoint(t)
	return config.RedisConfig{
		Addr:   host + ":" + port,
		Prefix: "e2e-" + strings.ReplaceAll(uuid.NewString(), "-", ""),
	}
}

// StartRedis returns the address of the shared Redis container.
func StartRedis(t *testing.T) string {
	return prepareRedis(t).Addr
}

// flushRedisPrefix deletes every key under prefix.
func flushRedisPrefix(cfg config.RedisConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	defer rdb.Close()

	iter := rdb.Scan(ctx, 0, cfg.Prefix+":*", 500).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// SharedSuite is embedded by every e2e suite. StoreDriver selects the slot
// store and defaults to postgres.
type SharedSuite struct {
	suite.Suite
	Router      *gin.Engine
	DB          *pgxpool.Pool
	Config      config.Config
	StoreDriver string
}

func (s *SharedSuite) SetupSuite() {
	driver := s.StoreDriver
	if driver == "" {
		driver = config.StoreDriverPostgres
	}
	s.DB, s.Router, s.Config = setupE2EEnvironment(s.T(), driver)
}

// SetupSubTest gives every s.Run a clean member and booking state.
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "Failed to reset database state")

	if s.Config.Booking.StoreDriver == config.StoreDriverRedis {
		require.NoError(s.T(), flushRedisPrefix(s.Config.Redis), "Failed to reset redis keys")
	}
}
