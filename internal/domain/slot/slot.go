package slot

import (
	"errors"
	"fmt"
	"time"
)

const (
	FirstHour = 0
	LastHour  = 23

	dateLayout = "2006-01-02"
)

var (
	ErrInvalidHour  = errors.New("hour must be between 0 and 23")
	ErrInvalidCourt = errors.New("court id must be positive")
	ErrInvalidDate  = errors.New("invalid date format, expected YYYY-MM-DD")
)

// Date is a calendar day without time or location.
// It is comparable and safe to use as a map key.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

// DateOf takes the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

func (d Date) Year() int          { return d.year }
func (d Date) Month() time.Month  { return d.month }
func (d Date) Day() int           { return d.day }
func (d Date) IsZero() bool       { return d == Date{} }
func (d Date) String() string     { return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day) }
func (d Date) Time() time.Time    { return d.In(time.UTC) }
func (d Date) AddDays(n int) Date { return DateOf(d.Time().AddDate(0, 0, n)) }

func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return cmpInt(d.year, o.year)
	case d.month != o.month:
		return cmpInt(int(d.month), int(o.month))
	default:
		return cmpInt(d.day, o.day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Identity is the natural key of a bookable one-hour unit.
type Identity struct {
	CourtID int64
	Date    Date
	Hour    int
}

func New(courtID int64, date Date, hour int) (Identity, error) {
	if courtID <= 0 {
		return Identity{}, ErrInvalidCourt
	}
	if date.IsZero() {
		return Identity{}, ErrInvalidDate
	}
	if hour < FirstHour || hour > LastHour {
		return Identity{}, ErrInvalidHour
	}
	return Identity{CourtID: courtID, Date: date, Hour: hour}, nil
}

// Compare orders by date, then hour, then court.
func (s Identity) Compare(o Identity) int {
	if c := s.Date.Compare(o.Date); c != 0 {
		return c
	}
	if s.Hour != o.Hour {
		return cmpInt(s.Hour, o.Hour)
	}
	switch {
	case s.CourtID < o.CourtID:
		return -1
	case s.CourtID > o.CourtID:
		return 1
	default:
		return 0
	}
}

func (s Identity) Less(o Identity) bool { return s.Compare(o) < 0 }

// AtOrAfter reports whether the slot starts at or after (date, hour).
func (s Identity) AtOrAfter(date Date, hour int) bool {
	if c := s.Date.Compare(date); c != 0 {
		return c > 0
	}
	return s.Hour >= hour
}

func (s Identity) StartsAt(loc *time.Location) time.Time {
	return s.Date.In(loc).Add(time.Duration(s.Hour) * time.Hour)
}

// Key is a stable string form, e.g. "3:2024-05-01:10".
func (s Identity) Key() string {
	return fmt.Sprintf("%d:%s:%02d", s.CourtID, s.Date, s.Hour)
}

func (s Identity) String() string { return s.Key() }

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
