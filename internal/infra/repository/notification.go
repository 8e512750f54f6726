package repository

import (
	"context"
	"time"

	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/pgconv"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(db db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
		VALUES ($1, $2, $3, $4, $5)`,
		kind, topic, payload, runAt, shared.NotificationStatusQueued,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]shared.NotificationJob, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, kind, topic, payload, run_at, attempts
		FROM notification_jobs
		WHERE status = $1 AND run_at <= $2
		ORDER BY run_at
		LIMIT $3
		FOR UPDATE SKIP LOCKED`,
		shared.NotificationStatusQueued, now, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []shared.NotificationJob
	for rows.Next() {
		var (
			id  pgtype.UUID
			job shared.NotificationJob
		)
		if err := rows.Scan(&id, &job.Kind, &job.Topic, &job.Payload, &job.RunAt, &job.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		job.ID = pgconv.UUIDFromPgtype(id)
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkDone(ctx context.Context, id uuid.UUID, now time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notification_jobs
		SET status = $2, attempts = attempts + 1, last_error = NULL, updated_at = $3
		WHERE id = $1`,
		pgconv.UUIDToPgtype(id), shared.NotificationStatusDone, now,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to complete notification job", err)
	}
	return nil
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string, retryAt *time.Time, now time.Time) error {
	status := shared.NotificationStatusFailed
	runAt := pgconv.TimePtrToPgtype(retryAt)
	if retryAt != nil {
		status = shared.NotificationStatusQueued
	}

	_, err := r.db.Exec(ctx, `
		UPDATE notification_jobs
		SET status = $2,
		    attempts = attempts + 1,
		    last_error = $3,
		    run_at = COALESCE($4, run_at),
		    updated_at = $5
		WHERE id = $1`,
		pgconv.UUIDToPgtype(id), status, lastError, runAt, now,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to record notification failure", err)
	}
	return nil
}
