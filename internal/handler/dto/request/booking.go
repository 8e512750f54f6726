package request

import (
	"court-booking/internal/domain/slot"
	"court-booking/internal/usecase/commands"
)

type ReserveRequest struct {
	CourtID     int64  `json:"court_id" binding:"required,min=1"`
	Date        string `json:"date" binding:"required"`
	Hour        *int   `json:"hour" binding:"required,min=0,max=23"`
	EntryTypeID int64  `json:"entry_type_id" binding:"required,min=1"`
}

func (r ReserveRequest) ToCommand() (commands.ReserveRequest, error) {
	id, err := ParseSlot(r.CourtID, r.Date, *r.Hour)
	if err != nil {
		return commands.ReserveRequest{}, err
	}
	return commands.ReserveRequest{
		Slot:        id,
		EntryTypeID: r.EntryTypeID,
	}, nil
}

// SlotURI binds /:courtId/:date/:hour path segments.
type SlotURI struct {
	CourtID int64  `uri:"courtId" binding:"required,min=1"`
	Date    string `uri:"date" binding:"required"`
	Hour    *int   `uri:"hour" binding:"required,min=0,max=23"`
}

func (u SlotURI) ToSlot() (slot.Identity, error) {
	return ParseSlot(u.CourtID, u.Date, *u.Hour)
}

type CourtDayURI struct {
	CourtID int64  `uri:"courtId" binding:"required,min=1"`
	Date    string `uri:"date" binding:"required"`
}

func ParseSlot(courtID int64, date string, hour int) (slot.Identity, error) {
	d, err := slot.ParseDate(date)
	if err != nil {
		return slot.Identity{}, err
	}
	return slot.New(courtID, d, hour)
}
