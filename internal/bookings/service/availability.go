package service

import (
	"context"
	"fmt"

	bookingserrors "hotelbooking/internal/bookings/errors"
	"hotelbooking/pkg/model"
)

// OverlapFinder is the store query the resolver depends on.
type OverlapFinder interface {
	FindOverlapping(ctx context.Context, start, end model.Date, excludeID string) ([]*model.Booking, error)
}

// AvailabilityResolver decides whether a candidate stay is free for the room.
type AvailabilityResolver struct {
	finder OverlapFinder
}

func NewAvailabilityResolver(finder OverlapFinder) *AvailabilityResolver {
	return &AvailabilityResolver{finder: finder}
}

// CheckAvailability returns a *ConflictError listing every booking, other than excludeID,
// whose stay shares a day with candidate. The candidate must already have both dates.
func (r *AvailabilityResolver) CheckAvailability(ctx context.Context, candidate *model.Booking, excludeID string) error {
	if candidate.StartDate == nil || candidate.EndDate == nil {
		return fmt.Errorf("availability check requires both dates")
	}

	conflicts, err := r.finder.FindOverlapping(ctx, *candidate.StartDate, *candidate.EndDate, excludeID)
	if err != nil {
		return fmt.Errorf("failed to query overlapping bookings: %w", err)
	}

	if len(conflicts) > 0 {
		return &bookingserrors.ConflictError{Bookings: conflicts}
	}
	return nil
}
