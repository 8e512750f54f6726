//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const (
	TestPassword = "password123"
	// bcrypt hash of TestPassword
	testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."
)

// CreateTestMember inserts an enabled member, or returns the id of the existing one.
func CreateTestMember(t *testing.T, db Executor, email, role string, quota int) uuid.UUID {
	t.Helper()

	memberID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `
		INSERT INTO members (id, email, password_hash, first_name, last_name, role, daily_hour_quota, membership_paid, enabled)
		VALUES ($1, $2, $3, 'Test', 'Member', $4, $5, true, true)
		ON CONFLICT (email) DO NOTHING`,
		memberID, email, testPasswordHash, role, quota)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM members WHERE email = $1", email).Scan(&memberID)
	}

	return memberID
}

// VerificationToken returns the pending token of a freshly registered member.
func VerificationToken(t *testing.T, db Executor, email string) string {
	t.Helper()

	var token *string
	err := db.QueryRow(context.Background(), "SELECT verification_token FROM members WHERE email = $1", email).Scan(&token)
	require.NoError(t, err)
	require.NotNil(t, token)
	return *token
}

func CountNotificationJobs(t *testing.T, db Executor, kind string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM notification_jobs WHERE kind = $1", kind).Scan(&n)
	require.NoError(t, err)
	return n
}

// SeedReferenceData restores the court and entry type catalog.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO courts (name) VALUES
			('Tennisplatz 1'), ('Tennisplatz 2'), ('Tennisplatz 3'), ('Tennisplatz 4'), ('Tennisplatz 5')
		ON CONFLICT (name) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO entry_types (name) VALUES
			('Buchung'), ('Kurs'), ('Turnier'), ('Gesperrt')
		ON CONFLICT (name) DO NOTHING;
	`)
	return err
}

// mutableTables are the tables a test can write to. The court and entry type
// catalog comes from the migration and stays.
var mutableTables = []string{"bookings", "notification_jobs", "members"}

// ResetDB empties the member owned tables and tops up the catalog.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "TRUNCATE "+strings.Join(mutableTables, ", ")+" CASCADE"); err != nil {
		return fmt.Errorf("truncate %v: %w", mutableTables, err)
	}
	return SeedReferenceData(pool)
}
