package readstore

import (
	"context"

	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/pgconv"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const memberViewColumns = `id, email, first_name, last_name, role, daily_hour_quota, membership_paid, enabled, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

type MemberReadStore struct {
	db db.DBTX
}

func NewMemberReadStore(db db.DBTX) *MemberReadStore {
	return &MemberReadStore{db: db}
}

func (s *MemberReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.MemberView, error) {
	row := s.db.QueryRow(ctx, `SELECT `+memberViewColumns+` FROM members WHERE id = $1`, pgconv.UUIDToPgtype(id))
	view, err := scanMemberView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("member not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find member by ID", err)
	}
	return view, nil
}

func (s *MemberReadStore) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*queries.MemberView, error) {
	result := make(map[uuid.UUID]*queries.MemberView, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	params := make([]pgtype.UUID, len(ids))
	for i, id := range ids {
		params[i] = pgconv.UUIDToPgtype(id)
	}

	rows, err := s.db.Query(ctx, `SELECT `+memberViewColumns+` FROM members WHERE id = ANY($1)`, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find members by IDs", err)
	}
	defer rows.Close()

	for rows.Next() {
		view, err := scanMemberView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan member", err)
		}
		result[view.ID] = view
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate members", err)
	}
	return result, nil
}

func (s *MemberReadStore) List(ctx context.Context, limit int, after *queries.CursorPosition) ([]*queries.MemberView, error) {
	query := `SELECT ` + memberViewColumns + ` FROM members ORDER BY created_at, id LIMIT $1`
	args := []any{limit}
	if after != nil {
		query = `SELECT ` + memberViewColumns + ` FROM members
			WHERE (created_at, id) > ($2, $3)
			ORDER BY created_at, id LIMIT $1`
		args = append(args, after.CreatedAt, pgconv.UUIDToPgtype(after.ID))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list members", err)
	}
	defer rows.Close()

	views := make([]*queries.MemberView, 0, limit)
	for rows.Next() {
		view, err := scanMemberView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan member", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate members", err)
	}
	return views, nil
}

func scanMemberView(row rowScanner) (*queries.MemberView, error) {
	var (
		id   pgtype.UUID
		view queries.MemberView
	)
	err := row.Scan(
		&id,
		&view.Email,
		&view.FirstName,
		&view.LastName,
		&view.Role,
		&view.DailyHourQuota,
		&view.MembershipPaid,
		&view.Enabled,
		&view.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.ID = pgconv.UUIDFromPgtype(id)
	return &view, nil
}
