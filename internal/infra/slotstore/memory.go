package slotstore

import (
	"context"
	"slices"
	"sync"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/slot"

	"github.com/google/uuid"
)

// MemoryStore keeps live bookings in process. It backs the memory driver and unit tests.
type MemoryStore struct {
	mu       sync.RWMutex
	bookings map[slot.Identity]*booking.Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bookings: make(map[slot.Identity]*booking.Booking)}
}

func (s *MemoryStore) InsertIfAbsent(_ context.Context, b *booking.Booking) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.bookings[b.Slot()]; taken {
		return false, nil
	}
	s.bookings[b.Slot()] = b
	return true, nil
}

func (s *MemoryStore) DeleteIfExists(_ context.Context, id slot.Identity) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return false, nil
	}
	delete(s.bookings, id)
	return true, nil
}

func (s *MemoryStore) Get(_ context.Context, id slot.Identity) (*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bookings[id], nil
}

func (s *MemoryStore) ListFrom(_ context.Context, date slot.Date, hour int) ([]*booking.Booking, error) {
	return s.collect(func(b *booking.Booking) bool {
		return b.Slot().AtOrAfter(date, hour)
	}), nil
}

func (s *MemoryStore) ListByCourtAndDate(_ context.Context, courtID int64, date slot.Date) ([]*booking.Booking, error) {
	return s.collect(func(b *booking.Booking) bool {
		return b.Slot().CourtID == courtID && b.Slot().Date == date
	}), nil
}

func (s *MemoryStore) CountByOwnerAndDate(_ context.Context, ownerID uuid.UUID, date slot.Date) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for id, b := range s.bookings {
		if id.Date == date && b.IsOwnedBy(ownerID) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) DeleteByOwner(_ context.Context, ownerID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, b := range s.bookings {
		if b.IsOwnedBy(ownerID) {
			delete(s.bookings, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) collect(keep func(*booking.Booking) bool) []*booking.Booking {
	s.mu.RLock()
	out := make([]*booking.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	s.mu.RUnlock()

	sortBookings(out)
	return out
}

// sortBookings orders by date, hour, court.
func sortBookings(bs []*booking.Booking) {
	slices.SortFunc(bs, func(a, b *booking.Booking) int {
		return a.Slot().Compare(b.Slot())
	})
}
