package queries

import (
	"context"

	"court-booking/internal/infra"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type MemberQueries interface {
	GetCurrent(ctx context.Context, memberID uuid.UUID) (*MemberView, error)
	List(ctx context.Context, limit int, after string) (*MemberPage, error)
}

type MemberReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MemberView, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*MemberView, error)
	// List is ordered by (created_at, id) and starts strictly after the given position.
	List(ctx context.Context, limit int, after *CursorPosition) ([]*MemberView, error)
}

type memberQueriesImpl struct {
	readStore MemberReadStore
}

func NewMemberQueries(readStore MemberReadStore) MemberQueries {
	return &memberQueriesImpl{
		readStore: readStore,
	}
}

func (q *memberQueriesImpl) GetCurrent(ctx context.Context, memberID uuid.UUID) (*MemberView, error) {
	m, err := q.readStore.FindByID(ctx, memberID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, shared.ErrMemberNotFound
		}
		return nil, err
	}

	if !m.Enabled {
		return nil, shared.ErrMemberDisabled
	}

	return m, nil
}

func (q *memberQueriesImpl) List(ctx context.Context, limit int, after string) (*MemberPage, error) {
	limit = ValidateLimit(limit)

	pos, err := DecodeAfterCursor(after)
	if err != nil {
		return nil, err
	}

	// One extra row tells whether another page exists
	rows, err := q.readStore.List(ctx, limit+1, pos)
	if err != nil {
		return nil, err
	}

	page := &MemberPage{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		last := page.Items[limit-1]
		page.NextCursor = EncodeAfterCursor(last.CreatedAt, last.ID)
	}
	return page, nil
}
