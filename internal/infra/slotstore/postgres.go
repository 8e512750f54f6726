package slotstore

import (
	"context"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/slot"
	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `court_id, booking_date, start_hour, owner_id, entry_type_id, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// PostgresStore relies on the bookings primary key (court_id, booking_date, start_hour)
// for slot uniqueness.
type PostgresStore struct {
	db db.DBTX
}

func NewPostgresStore(db db.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) InsertIfAbsent(ctx context.Context, b *booking.Booking) (bool, error) {
	id := b.Slot()
	tag, err := s.db.Exec(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (court_id, booking_date, start_hour) DO NOTHING`,
		id.CourtID,
		pgconv.DateToPgtype(id.Date),
		id.Hour,
		pgconv.UUIDToPgtype(b.OwnerID()),
		b.EntryTypeID(),
		b.CreatedAt(),
	)
	if err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return false, infra.WrapRepoErr("booking references unknown row", err, infra.KindForeignKeyViolated)
		}
		return false, infra.WrapRepoErr("failed to insert booking", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) DeleteIfExists(ctx context.Context, id slot.Identity) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM bookings
		WHERE court_id = $1 AND booking_date = $2 AND start_hour = $3`,
		id.CourtID, pgconv.DateToPgtype(id.Date), id.Hour,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete booking", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) Get(ctx context.Context, id slot.Identity) (*booking.Booking, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE court_id = $1 AND booking_date = $2 AND start_hour = $3`,
		id.CourtID, pgconv.DateToPgtype(id.Date), id.Hour,
	)
	b, err := scanBooking(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to get booking", err)
	}
	return b, nil
}

func (s *PostgresStore) ListFrom(ctx context.Context, date slot.Date, hour int) ([]*booking.Booking, error) {
	return s.list(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE (booking_date, start_hour) >= ($1, $2)
		ORDER BY booking_date, start_hour, court_id`,
		pgconv.DateToPgtype(date), hour,
	)
}

func (s *PostgresStore) ListByCourtAndDate(ctx context.Context, courtID int64, date slot.Date) ([]*booking.Booking, error) {
	return s.list(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE court_id = $1 AND booking_date = $2
		ORDER BY start_hour`,
		courtID, pgconv.DateToPgtype(date),
	)
}

func (s *PostgresStore) CountByOwnerAndDate(ctx context.Context, ownerID uuid.UUID, date slot.Date) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `
		SELECT count(*) FROM bookings WHERE owner_id = $1 AND booking_date = $2`,
		pgconv.UUIDToPgtype(ownerID), pgconv.DateToPgtype(date),
	).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count bookings", err)
	}
	return n, nil
}

func (s *PostgresStore) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM bookings WHERE owner_id = $1`, pgconv.UUIDToPgtype(ownerID))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete bookings of owner", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*booking.Booking, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var out []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return out, nil
}

func scanBooking(row rowScanner) (*booking.Booking, error) {
	var (
		courtID     int64
		date        pgtype.Date
		hour        int
		owner       pgtype.UUID
		entryTypeID int64
		createdAt   pgtype.Timestamptz
	)
	if err := row.Scan(&courtID, &date, &hour, &owner, &entryTypeID, &createdAt); err != nil {
		return nil, err
	}

	id, err := slot.New(courtID, pgconv.DateFromPgtype(date), hour)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt booking slot", err)
	}
	return booking.ReconstructBooking(id, pgconv.UUIDFromPgtype(owner), entryTypeID, createdAt.Time), nil
}
