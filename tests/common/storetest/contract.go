//go:build unit || e2e

package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/slot"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixture describes the references a store needs for valid bookings.
// NewStore must return an empty store.
type Fixture struct {
	NewStore    func(t *testing.T) shared.SlotStore
	OwnerA      uuid.UUID
	OwnerB      uuid.UUID
	CourtA      int64
	CourtB      int64
	EntryTypeID int64
}

var day = slot.NewDate(2099, time.May, 1)

// Run exercises the slot store semantics every driver must share.
func Run(t *testing.T, f Fixture) {
	t.Helper()
	ctx := context.Background()

	t.Run("空きスロットにだけ挿入できる", func(t *testing.T) {
		store := f.NewStore(t)
		b := f.booking(t, f.CourtA, day, 10, f.OwnerA)

		ok, err := store.InsertIfAbsent(ctx, b)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.InsertIfAbsent(ctx, f.booking(t, f.CourtA, day, 10, f.OwnerB))
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := store.Get(ctx, b.Slot())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, f.OwnerA, got.OwnerID())
		assert.Equal(t, b.Slot(), got.Slot())
	})

	t.Run("削除は一度だけ成功する", func(t *testing.T) {
		store := f.NewStore(t)
		b := f.booking(t, f.CourtA, day, 11, f.OwnerA)
		_, err := store.InsertIfAbsent(ctx, b)
		require.NoError(t, err)

		ok, err := store.DeleteIfExists(ctx, b.Slot())
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.DeleteIfExists(ctx, b.Slot())
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := store.Get(ctx, b.Slot())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("同時挿入でも勝者は一人", func(t *testing.T) {
		store := f.NewStore(t)
		const workers = 32

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for i := 0; i < workers; i++ {
			owner := f.OwnerA
			if i%2 == 1 {
				owner = f.OwnerB
			}
			b := f.booking(t, f.CourtB, day, 12, owner)
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := store.InsertIfAbsent(ctx, b)
				assert.NoError(t, err)
				if ok {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, wins)
	})

	t.Run("ListFromは日付・時間・コート順", func(t *testing.T) {
		store := f.NewStore(t)
		f.insert(t, store, f.booking(t, f.CourtB, day, 10, f.OwnerA))
		f.insert(t, store, f.booking(t, f.CourtA, day, 10, f.OwnerB))
		f.insert(t, store, f.booking(t, f.CourtA, day, 9, f.OwnerA))
		f.insert(t, store, f.booking(t, f.CourtA, day.AddDays(1), 8, f.OwnerA))

		got, err := store.ListFrom(ctx, day, 10)
		require.NoError(t, err)

		assert.Equal(t, []string{
			slotKey(f.CourtA, day, 10),
			slotKey(f.CourtB, day, 10),
			slotKey(f.CourtA, day.AddDays(1), 8),
		}, keys(got))
	})

	t.Run("コートと日付で絞り込める", func(t *testing.T) {
		store := f.NewStore(t)
		f.insert(t, store, f.booking(t, f.CourtA, day, 15, f.OwnerA))
		f.insert(t, store, f.booking(t, f.CourtA, day, 7, f.OwnerB))
		f.insert(t, store, f.booking(t, f.CourtB, day, 7, f.OwnerB))
		f.insert(t, store, f.booking(t, f.CourtA, day.AddDays(1), 7, f.OwnerB))

		got, err := store.ListByCourtAndDate(ctx, f.CourtA, day)
		require.NoError(t, err)

		assert.Equal(t, []string{
			slotKey(f.CourtA, day, 7),
			slotKey(f.CourtA, day, 15),
		}, keys(got))
	})

	t.Run("オーナーと日付で件数を数える", func(t *testing.T) {
		store := f.NewStore(t)
		f.insert(t, store, f.booking(t, f.CourtA, day, 8, f.OwnerA))
		f.insert(t, store, f.booking(t, f.CourtB, day, 9, f.OwnerA))
		f.insert(t, store, f.booking(t, f.CourtB, day, 10, f.OwnerB))
		f.insert(t, store, f.booking(t, f.CourtA, day.AddDays(1), 8, f.OwnerA))

		n, err := store.CountByOwnerAndDate(ctx, f.OwnerA, day)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = store.CountByOwnerAndDate(ctx, f.OwnerB, day.AddDays(1))
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("オーナーの予約だけを一括削除する", func(t *testing.T) {
		store := f.NewStore(t)
		f.insert(t, store, f.booking(t, f.CourtA, day, 8, f.OwnerA))
		f.insert(t, store, f.booking(t, f.CourtA, day.AddDays(2), 8, f.OwnerA))
		keep := f.booking(t, f.CourtB, day, 8, f.OwnerB)
		f.insert(t, store, keep)

		n, err := store.DeleteByOwner(ctx, f.OwnerA)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		count, err := store.CountByOwnerAndDate(ctx, f.OwnerA, day)
		require.NoError(t, err)
		assert.Zero(t, count)

		got, err := store.Get(ctx, keep.Slot())
		require.NoError(t, err)
		assert.NotNil(t, got)
	})
}

func (f Fixture) booking(t *testing.T, courtID int64, date slot.Date, hour int, owner uuid.UUID) *booking.Booking {
	t.Helper()
	id, err := slot.New(courtID, date, hour)
	require.NoError(t, err)
	b, err := booking.NewBooking(id, owner, f.EntryTypeID, time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, err)
	return b
}

func (f Fixture) insert(t *testing.T, store shared.SlotStore, b *booking.Booking) {
	t.Helper()
	ok, err := store.InsertIfAbsent(context.Background(), b)
	require.NoError(t, err)
	require.True(t, ok)
}

func slotKey(courtID int64, date slot.Date, hour int) string {
	return slot.Identity{CourtID: courtID, Date: date, Hour: hour}.Key()
}

func keys(bs []*booking.Booking) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.Slot().Key())
	}
	return out
}
