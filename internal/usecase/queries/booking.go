package queries

import (
	"context"
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/quota"
	"court-booking/internal/domain/slot"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrCourtNotFound = errs.New("court not found")

type BookingQueries interface {
	// ListUpcoming returns every live booking whose start is at or after the
	// current hour in the booking timezone, ordered by date, hour, court.
	ListUpcoming(ctx context.Context, now time.Time) ([]*BookingView, error)
	ListForCourtAndDate(ctx context.Context, courtID int64, date slot.Date) ([]*BookingView, error)
	RemainingQuota(ctx context.Context, memberID uuid.UUID, date slot.Date) (*QuotaView, error)
}

type bookingQueriesImpl struct {
	slots     shared.SlotStore
	directory shared.MemberDirectory
	catalog   shared.Catalog
	members   MemberReadStore
	policy    quota.Policy
	loc       *time.Location
}

func NewBookingQueries(
	slots shared.SlotStore,
	directory shared.MemberDirectory,
	catalog shared.Catalog,
	members MemberReadStore,
	loc *time.Location,
) BookingQueries {
	return &bookingQueriesImpl{
		slots:     slots,
		directory: directory,
		catalog:   catalog,
		members:   members,
		policy:    quota.NewPolicy(),
		loc:       loc,
	}
}

func (q *bookingQueriesImpl) ListUpcoming(ctx context.Context, now time.Time) ([]*BookingView, error) {
	local := now.In(q.loc)

	bookings, err := q.slots.ListFrom(ctx, slot.DateOf(local), local.Hour())
	if err != nil {
		return nil, errs.Wrap(err, "list upcoming bookings")
	}
	return q.enrich(ctx, bookings)
}

func (q *bookingQueriesImpl) ListForCourtAndDate(ctx context.Context, courtID int64, date slot.Date) ([]*BookingView, error) {
	ok, err := q.catalog.CourtExists(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCourtNotFound
	}

	bookings, err := q.slots.ListByCourtAndDate(ctx, courtID, date)
	if err != nil {
		return nil, errs.Wrap(err, "list court bookings")
	}
	return q.enrich(ctx, bookings)
}

func (q *bookingQueriesImpl) RemainingQuota(ctx context.Context, memberID uuid.UUID, date slot.Date) (*QuotaView, error) {
	m, err := q.directory.Resolve(ctx, memberID)
	if err != nil {
		return nil, err
	}

	used, err := q.directory.CountLiveBookings(ctx, memberID, date)
	if err != nil {
		return nil, err
	}

	remaining := q.policy.Remaining(m, date, used)
	view := &QuotaView{
		MemberID:  memberID,
		Date:      date.String(),
		Used:      used,
		Unbounded: remaining.IsUnbounded(),
	}
	if !remaining.IsUnbounded() {
		hours := remaining.Hours()
		view.Remaining = &hours
	}
	return view, nil
}

func (q *bookingQueriesImpl) enrich(ctx context.Context, bookings []*booking.Booking) ([]*BookingView, error) {
	views := make([]*BookingView, 0, len(bookings))
	if len(bookings) == 0 {
		return views, nil
	}

	courts, err := q.catalog.ListCourts(ctx)
	if err != nil {
		return nil, err
	}
	courtNames := make(map[int64]string, len(courts))
	for _, c := range courts {
		courtNames[c.ID] = c.Name
	}

	entryTypes, err := q.catalog.ListEntryTypes(ctx)
	if err != nil {
		return nil, err
	}
	entryTypeNames := make(map[int64]string, len(entryTypes))
	for _, t := range entryTypes {
		entryTypeNames[t.ID] = t.Name
	}

	ownerIDs := make([]uuid.UUID, 0, len(bookings))
	seen := make(map[uuid.UUID]struct{}, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.OwnerID()]; ok {
			continue
		}
		seen[b.OwnerID()] = struct{}{}
		ownerIDs = append(ownerIDs, b.OwnerID())
	}
	owners, err := q.members.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	for _, b := range bookings {
		s := b.Slot()
		view := &BookingView{
			CourtID:       s.CourtID,
			CourtName:     courtNames[s.CourtID],
			Date:          s.Date.String(),
			Hour:          s.Hour,
			EndHour:       s.Hour + 1,
			EntryTypeID:   b.EntryTypeID(),
			EntryTypeName: entryTypeNames[b.EntryTypeID()],
			OwnerID:       b.OwnerID(),
			CreatedAt:     b.CreatedAt(),
		}
		if owner, ok := owners[b.OwnerID()]; ok {
			view.OwnerName = owner.FullName()
		}
		views = append(views, view)
	}
	return views, nil
}
