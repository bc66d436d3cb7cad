package model

import (
	"fmt"
	"time"
)

type Booking struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name" validate:"required"`
	StartDate *Date     `json:"startDate" validate:"required"`
	EndDate   *Date     `json:"endDate" validate:"required"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// BookingPatch carries a partial update. Nil fields are left untouched.
type BookingPatch struct {
	Name      *string `json:"name,omitempty"`
	StartDate *Date   `json:"startDate,omitempty"`
	EndDate   *Date   `json:"endDate,omitempty"`
}

// SearchCriteria selects bookings whose stay overlaps [StartDate, EndDate].
type SearchCriteria struct {
	StartDate *Date `json:"startDate"`
	EndDate   *Date `json:"endDate"`
}

func (b *Booking) Range() DateRange {
	var r DateRange
	if b.StartDate != nil {
		r.Start = *b.StartDate
	}
	if b.EndDate != nil {
		r.End = *b.EndDate
	}
	return r
}

func (b *Booking) String() string {
	return fmt.Sprintf("Booking[id=%s, name=%s, startDate=%s, endDate=%s]", b.ID, b.Name, fmtDate(b.StartDate), fmtDate(b.EndDate))
}

func fmtDate(d *Date) string {
	if d == nil {
		return "<nil>"
	}
	return d.String()
}

// DateRange is a closed interval of calendar days.
type DateRange struct {
	Start Date `json:"startDate"`
	End   Date `json:"endDate"`
}

// Overlaps reports whether r and other share at least one day, boundaries included.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

func (r DateRange) Nights() int {
	return r.Start.DaysUntil(r.End)
}
