package service

import (
	"context"
	"errors"

	bookingserrors "hotelbooking/internal/bookings/errors"
	"hotelbooking/internal/bookings/events"
	"hotelbooking/internal/bookings/repository"
	"hotelbooking/internal/bookings/validator"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/sanitizer"
)

// RoomLockID is the advisory lock guarding the hotel's single room.
const RoomLockID = "booking_lock_room"

type BookingService interface {
	Search(ctx context.Context, criteria model.SearchCriteria) ([]*model.Booking, error)
	GetAll(ctx context.Context) ([]*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	Cancel(ctx context.Context, id string) error
	Update(ctx context.Context, id string, patch *model.BookingPatch) (*model.Booking, error)
}

type bookingService struct {
	repo         repository.BookingRepository
	lockRepo     repository.BookingLockRepository
	validator    *validator.BookingValidator
	availability *AvailabilityResolver
	publisher    events.Publisher
	cfg          *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &bookingService{
		repo:         repo,
		lockRepo:     lockRepo,
		validator:    validator,
		availability: NewAvailabilityResolver(repo),
		publisher:    publisher,
		cfg:          cfg,
	}
}

func (s *bookingService) Search(ctx context.Context, criteria model.SearchCriteria) ([]*model.Booking, error) {
	probe := &model.Booking{StartDate: criteria.StartDate, EndDate: criteria.EndDate}
	if err := s.validate(probe, validator.ModeSearch); err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindOverlapping(ctx, *probe.StartDate, *probe.EndDate, "")
	if err != nil {
		s.cfg.Log.Error("Failed to search bookings",
			"start_date", probe.StartDate,
			"end_date", probe.EndDate,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to search bookings", err)
	}

	s.cfg.Log.Debug("Booking search completed",
		"start_date", probe.StartDate,
		"end_date", probe.EndDate,
		"count", len(bookings),
	)
	return bookings, nil
}

func (s *bookingService) GetAll(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateLookupError(id, err)
	}
	return booking, nil
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	candidate := *booking
	candidate.ID = ""
	s.sanitize(&candidate)
	if err := s.validate(&candidate, validator.ModeCreate); err != nil {
		return nil, err
	}

	var saved *model.Booking
	err := s.withRoomLock(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.checkAndSave(txCtx, &candidate, "")
		return err
	})
	if err != nil {
		s.logWriteFailure("Failed to create booking", err, "booking", candidate.String())
		return nil, err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", saved.ID,
		"start_date", saved.StartDate,
		"end_date", saved.EndDate,
	)
	s.publish(ctx, events.NewBookingEvent(events.BookingCreated, saved))
	return saved, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return apperrors.Internal("Failed to cancel booking", err)
	}

	if !deleted {
		s.cfg.Log.Info("Cancel matched no booking", "id", id)
		return nil
	}

	s.cfg.Log.Info("Booking cancelled successfully", "id", id)
	s.publish(ctx, events.NewCancelledEvent(id))
	return nil
}

// Update reads, merges and writes under the room lock so concurrent patches to the
// same booking are applied one after the other.
func (s *bookingService) Update(ctx context.Context, id string, patch *model.BookingPatch) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	var saved *model.Booking
	err := s.withRoomLock(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return s.translateLookupError(id, err)
		}

		merged := MergeUpdate(existing, patch)
		s.sanitize(merged)
		if err := s.validate(merged, validator.ModeUpdate); err != nil {
			return err
		}

		saved, err = s.checkAndSave(txCtx, merged, id)
		return err
	})
	if err != nil {
		s.logWriteFailure("Failed to update booking", err, "id", id)
		return nil, err
	}

	s.cfg.Log.Info("Booking updated successfully",
		"id", saved.ID,
		"start_date", saved.StartDate,
		"end_date", saved.EndDate,
	)
	s.publish(ctx, events.NewBookingEvent(events.BookingUpdated, saved))
	return saved, nil
}

// --- Helpers ---

// withRoomLock runs fn in one transaction while holding the room lock.
func (s *bookingService) withRoomLock(ctx context.Context, fn func(txCtx context.Context) error) error {
	owner, err := s.acquireRoomLock(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.lockRepo.Release(context.WithoutCancel(ctx), RoomLockID, owner); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", RoomLockID, "error", releaseErr)
		}
	}()

	return s.repo.ExecuteTransaction(ctx, fn)
}

func (s *bookingService) checkAndSave(ctx context.Context, booking *model.Booking, excludeID string) (*model.Booking, error) {
	if err := s.checkAvailability(ctx, booking, excludeID); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", booking.ID)
		}
		return nil, apperrors.Internal("Failed to save booking", err)
	}
	return saved, nil
}

func (s *bookingService) checkAvailability(ctx context.Context, booking *model.Booking, excludeID string) error {
	err := s.availability.CheckAvailability(ctx, booking, excludeID)
	if err == nil {
		return nil
	}

	var conflictErr *bookingserrors.ConflictError
	if errors.As(err, &conflictErr) {
		s.cfg.Log.Warn("Booking dates conflict with existing bookings",
			"booking", booking.String(),
			"conflicts", len(conflictErr.Bookings),
		)
		return apperrors.Conflict(conflictErr.Error(), conflictErr, map[string]any{
			"conflicts": conflictErr.Bookings,
		})
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	return apperrors.Internal("Failed to check existing bookings", err)
}

func (s *bookingService) acquireRoomLock(ctx context.Context) (string, error) {
	owner, err := s.lockRepo.Acquire(ctx, RoomLockID, s.cfg.BookingLockTTL)
	if err == nil {
		return owner, nil
	}
	if errors.Is(err, bookingserrors.ErrLockHeld) {
		return "", apperrors.Conflict("The room is currently being booked by another request. Please try again.", err, nil)
	}
	return "", apperrors.Internal("Failed to acquire booking lock", err)
}

// logWriteFailure logs at Error only for internal failures; rejected input is logged where it is detected.
func (s *bookingService) logWriteFailure(msg string, err error, attrs ...any) {
	if apperrors.AsAppError(err).Code != apperrors.CodeInternal {
		return
	}
	s.cfg.Log.Error(msg, append(attrs, "error", err)...)
}

func (s *bookingService) translateLookupError(id string, err error) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	s.cfg.Log.Error("Failed to retrieve booking", "id", id, "error", err)
	return apperrors.Internal("Failed to retrieve booking", err)
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.Name = sanitizer.SanitizeGuestName(b.Name)
}

func (s *bookingService) validate(booking *model.Booking, mode validator.Mode) error {
	err := s.validator.Validate(booking, mode)
	if err == nil {
		return nil
	}

	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		s.cfg.Log.Warn("Booking validation failed",
			"mode", mode.String(),
			"rule", vErr.RuleName(),
			"error", vErr.Message,
		)
		return apperrors.Validation(vErr.Message, vErr, vErr.Details())
	}
	return apperrors.Internal("Booking validation failed", err)
}

// publish is best effort: the write has already committed.
func (s *bookingService) publish(ctx context.Context, event events.BookingEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", event.EventType,
			"booking_id", event.BookingID,
			"error", err,
		)
	}
}
