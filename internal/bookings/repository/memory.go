package repository

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	bookingserrors "hotelbooking/internal/bookings/errors"
	mongotx "hotelbooking/pkg/db/mongo"
	"hotelbooking/pkg/model"
)

// memoryBookingRepository keeps bookings in process. IDs are decimal sequence numbers.
type memoryBookingRepository struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	bookings map[string]*model.Booking
	nextID   int64
	now      func() time.Time
}

func NewMemoryBookingRepository() BookingRepository {
	return &memoryBookingRepository{
		bookings: make(map[string]*model.Booking),
		now:      time.Now,
	}
}

func (r *memoryBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		result = append(result, clone(b))
	}
	sortByStartDate(result)
	return result, nil
}

func (r *memoryBookingRepository) FindOverlapping(ctx context.Context, start, end model.Date, excludeID string) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	window := model.DateRange{Start: start, End: end}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Booking
	for id, b := range r.bookings {
		if id == excludeID {
			continue
		}
		if b.Range().Overlaps(window) {
			result = append(result, clone(b))
		}
	}
	sortByStartDate(result)
	return result, nil
}

func (r *memoryBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	return clone(b), nil
}

func (r *memoryBookingRepository) Save(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	stored := clone(booking)
	stored.UpdatedAt = now

	if stored.ID == "" {
		r.nextID++
		stored.ID = strconv.FormatInt(r.nextID, 10)
		stored.CreatedAt = now
	} else {
		existing, ok := r.bookings[stored.ID]
		if !ok {
			return nil, bookingserrors.ErrNotFound
		}
		stored.CreatedAt = existing.CreatedAt
	}

	r.bookings[stored.ID] = stored
	return clone(stored), nil
}

func (r *memoryBookingRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return false, nil
	}
	delete(r.bookings, id)
	return true, nil
}

// ExecuteTransaction serializes fn against other transactions. Writes made by fn are not
// rolled back on error; callers only write as the last step.
func (r *memoryBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	return fn(ctx)
}

func (r *memoryBookingRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func clone(b *model.Booking) *model.Booking {
	c := *b
	if b.StartDate != nil {
		c.StartDate = model.DatePtr(*b.StartDate)
	}
	if b.EndDate != nil {
		c.EndDate = model.DatePtr(*b.EndDate)
	}
	return &c
}

func sortByStartDate(bookings []*model.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].Range().Start.Before(bookings[j].Range().Start)
	})
}
