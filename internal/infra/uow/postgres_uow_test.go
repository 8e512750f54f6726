//go:build unit

package uow

import (
	"errors"
	"testing"
	"time"

	"court-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_ShouldRetry(t *testing.T) {
	policy := retryPolicy{retries: 3, base: time.Millisecond}
	serialization := &pgconn.PgError{Code: pgErrCodeSerializationFailure}
	deadlock := errs.Wrap(&pgconn.PgError{Code: pgErrCodeDeadlockDetected}, "commit")

	tests := []struct {
		name    string
		err     error
		attempt int
		want    bool
	}{
		{name: "serialization failure retries", err: serialization, attempt: 0, want: true},
		{name: "wrapped deadlock retries", err: deadlock, attempt: 1, want: true},
		{name: "last attempt stops", err: serialization, attempt: 3, want: false},
		{name: "unique violation does not retry", err: &pgconn.PgError{Code: "23505"}, attempt: 0, want: false},
		{name: "plain error does not retry", err: errors.New("boom"), attempt: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.shouldRetry(tt.err, tt.attempt))
		})
	}
}

func TestRetryPolicy_Backoff(t *testing.T) {
	policy := defaultRetryPolicy
	for attempt := range policy.retries {
		floor := policy.base << attempt
		wait := policy.backoff(attempt)
		assert.GreaterOrEqual(t, wait, floor)
		assert.Less(t, wait, floor+floor/5)
	}
}
