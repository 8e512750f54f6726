package uow

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"court-booking/internal/infra/db"
	"court-booking/internal/infra/repository"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// retryPolicy backs off exponentially from base with up to 20% jitter.
type retryPolicy struct {
	retries int
	base    time.Duration
}

var defaultRetryPolicy = retryPolicy{retries: 3, base: 100 * time.Millisecond}

func (p retryPolicy) shouldRetry(err error, attempt int) bool {
	return attempt < p.retries && isRetryableError(err)
}

func (p retryPolicy) backoff(attempt int) time.Duration {
	wait := p.base << attempt
	if spread := int64(wait / 5); spread > 0 {
		wait += time.Duration(rand.Int64N(spread))
	}
	return wait
}

type PostgresUoW struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
	policy retryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool, logger *slog.Logger) shared.UnitOfWork {
	return &PostgresUoW{
		pool:   pool,
		logger: logger,
		policy: defaultRetryPolicy,
	}
}

// Within runs fn in a READ COMMITTED transaction. Member rows are locked with
// SELECT ... FOR UPDATE and outbox jobs are claimed with SKIP LOCKED, so the
// weaker level is enough.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; ; attempt++ {
		err := u.attempt(ctx, fn)
		if err == nil {
			return nil
		}

		if !u.policy.shouldRetry(err, attempt) {
			if isRetryableError(err) {
				u.logger.Error("transaction failed after max retries", "attempts", attempt+1, "error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		wait := u.policy.backoff(attempt)
		u.logger.Warn("retrying transaction",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// attempt owns one transaction from begin to commit or rollback.
func (u *PostgresUoW) attempt(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if err := pgxTx.Rollback(ctx); err != nil && !errs.Is(err, pgx.ErrTxClosed) {
			u.logger.Warn("rollback failed", "error", err.Error())
		}
	}()

	if err := fn(ctx, &pgTx{dbtx: pgxTx}); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errs.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrCodeSerializationFailure || pgErr.Code == pgErrCodeDeadlockDetected
}

// pgTx builds repositories on first use.
type pgTx struct {
	dbtx db.DBTX

	members       shared.MemberRepository
	notifications shared.NotificationRepository
}

func (t *pgTx) Members() shared.MemberRepository {
	if t.members == nil {
		t.members = repository.NewMemberRepository(t.dbtx)
	}
	return t.members
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notifications == nil {
		t.notifications = repository.NewNotificationRepository(t.dbtx)
	}
	return t.notifications
}
