package service

import "hotelbooking/pkg/model"

// MergeUpdate overlays the non-nil fields of patch on a copy of existing. The ID is never changed.
func MergeUpdate(existing *model.Booking, patch *model.BookingPatch) *model.Booking {
	merged := *existing
	if patch == nil {
		return &merged
	}

	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.StartDate != nil {
		merged.StartDate = model.DatePtr(*patch.StartDate)
	}
	if patch.EndDate != nil {
		merged.EndDate = model.DatePtr(*patch.EndDate)
	}

	return &merged
}
