//go:build unit

package slotstore

import (
	"testing"
	"time"

	"court-booking/internal/domain/slot"

	"github.com/stretchr/testify/assert"
)

func TestScoreOrdersByDateThenHour(t *testing.T) {
	may1 := slot.NewDate(2024, time.May, 1)

	assert.Less(t, score(may1, 0), score(may1, 1))
	assert.Less(t, score(may1, 23), score(may1.AddDays(1), 0))
	assert.Equal(t, score(may1, 23)+1, score(may1.AddDays(1), 0))
	assert.Less(t, score(may1.AddDays(-365), 12), score(may1, 0))
}

func TestKeyPrefix(t *testing.T) {
	s := NewRedisStore(nil, WithKeyPrefix("club:"))
	id, err := slot.New(3, slot.NewDate(2024, time.May, 1), 10)
	assert.NoError(t, err)
	assert.Equal(t, "club:slot:"+id.Key(), s.slotKey(id))

	assert.Equal(t, "court-booking:timeline", NewRedisStore(nil, WithKeyPrefix("")).timelineKey())
}
