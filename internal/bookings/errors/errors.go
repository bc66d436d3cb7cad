package errors

import (
	"errors"
	"fmt"
	"strings"

	"hotelbooking/pkg/model"
)

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrLockHeld = errors.New("room is locked by another booking request")

	ErrConflict = errors.New("dates conflict with existing bookings")
)

// ConflictError lists the persisted bookings that overlap a candidate stay.
type ConflictError struct {
	Bookings []*model.Booking
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Bookings))
	for _, b := range e.Bookings {
		parts = append(parts, b.String())
	}
	return fmt.Sprintf("Dates chosen conflict with existing bookings for this room: [%s]", strings.Join(parts, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
