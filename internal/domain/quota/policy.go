package quota

import (
	"court-booking/internal/domain/member"
	"court-booking/internal/domain/slot"
)

// Remaining is the allowance left for one member on one date.
type Remaining struct {
	unbounded bool
	hours     int
}

func Unbounded() Remaining {
	return Remaining{unbounded: true}
}

func Limited(hours int) Remaining {
	return Remaining{hours: max(0, hours)}
}

func (r Remaining) IsUnbounded() bool { return r.unbounded }

// Hours is meaningless when IsUnbounded is true.
func (r Remaining) Hours() int { return r.hours }

// Allows reports whether one more slot may be taken.
func (r Remaining) Allows() bool {
	return r.unbounded || r.hours > 0
}

// Policy decides how many more slots a member may hold on a date.
// It is a pure function of its inputs.
type Policy struct{}

func NewPolicy() Policy {
	return Policy{}
}

func (Policy) Remaining(m *member.Member, _ slot.Date, currentCount int) Remaining {
	if m.IsAdmin() {
		return Unbounded()
	}
	return Limited(m.DailyQuota().Int() - currentCount)
}
