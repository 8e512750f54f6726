package court

// Court is a bookable tennis court.
type Court struct {
	ID   int64
	Name string
}

// EntryType classifies a booking (regular booking, course, tournament, blocked).
type EntryType struct {
	ID   int64
	Name string
}

const (
	EntryTypeBooking    = "Buchung"
	EntryTypeCourse     = "Kurs"
	EntryTypeTournament = "Turnier"
	EntryTypeBlocked    = "Gesperrt"
)
