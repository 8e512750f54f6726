package directory

import (
	"context"

	"court-booking/internal/domain/member"
	"court-booking/internal/domain/slot"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Directory resolves members from the member repository and counts their
// bookings in whichever slot store is configured.
type Directory struct {
	members shared.MemberRepository
	slots   shared.SlotStore
}

func New(members shared.MemberRepository, slots shared.SlotStore) *Directory {
	return &Directory{members: members, slots: slots}
}

// Resolve fails with shared.ErrMemberDisabled for members that never verified their email.
func (d *Directory) Resolve(ctx context.Context, memberID uuid.UUID) (*member.Member, error) {
	m, err := d.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !m.IsEnabled() {
		return nil, shared.ErrMemberDisabled
	}
	return m, nil
}

func (d *Directory) CountLiveBookings(ctx context.Context, memberID uuid.UUID, date slot.Date) (int, error) {
	return d.slots.CountByOwnerAndDate(ctx, memberID, date)
}
