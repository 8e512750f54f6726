//go:build unit

package slotstore_test

import (
	"testing"

	"court-booking/internal/infra/slotstore"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/storetest"

	"github.com/google/uuid"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, storetest.Fixture{
		NewStore: func(t *testing.T) shared.SlotStore {
			return slotstore.NewMemoryStore()
		},
		OwnerA:      uuid.New(),
		OwnerB:      uuid.New(),
		CourtA:      1,
		CourtB:      2,
		EntryTypeID: 1,
	})
}
