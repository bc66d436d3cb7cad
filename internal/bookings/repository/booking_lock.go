package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	bookingserrors "hotelbooking/internal/bookings/errors"
	"hotelbooking/pkg/config"
	"hotelbooking/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const LockCollectionName = "Booking_locks"

// BookingLockRepository provides advisory locks. Acquire returns ErrLockHeld while
// another holder's lock is unexpired, otherwise an owner token for Release.
// Release only removes the lock while it still belongs to owner.
type BookingLockRepository interface {
	Acquire(ctx context.Context, lockID string, ttl time.Duration) (string, error)
	Release(ctx context.Context, lockID, owner string) error
}

func newLock(lockID string, now time.Time, ttl time.Duration) *model.BookingLock {
	return &model.BookingLock{
		ID:        lockID,
		Owner:     uuid.NewString(),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

type mongoBookingLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

// Acquire inserts the lock document. A duplicate key means the lock is held; an expired
// holder that the TTL monitor has not yet removed is cleared and the insert retried once.
func (r *mongoBookingLockRepository) Acquire(ctx context.Context, lockID string, ttl time.Duration) (string, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	lock := newLock(lockID, now, ttl)

	_, err := r.collection.InsertOne(ctx, lock)
	if err == nil {
		return lock.Owner, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return "", fmt.Errorf("failed to acquire lock %s: %w", lockID, err)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID, "expires_at": bson.M{"$lte": now}})
	if err != nil {
		return "", fmt.Errorf("failed to clear expired lock %s: %w", lockID, err)
	}
	if result.DeletedCount == 0 {
		return "", bookingserrors.ErrLockHeld
	}

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", bookingserrors.ErrLockHeld
		}
		return "", fmt.Errorf("failed to acquire lock %s: %w", lockID, err)
	}
	return lock.Owner, nil
}

func (r *mongoBookingLockRepository) Release(ctx context.Context, lockID, owner string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID, "owner": owner})
	if err != nil {
		return fmt.Errorf("failed to release lock %s: %w", lockID, err)
	}
	if result.DeletedCount == 0 {
		r.cfg.Log.Warn("Lock was no longer held by this owner", "lock_id", lockID)
	}
	return nil
}

type memoryBookingLockRepository struct {
	mu    sync.Mutex
	locks map[string]*model.BookingLock
	now   func() time.Time
}

func NewMemoryBookingLockRepository() BookingLockRepository {
	return &memoryBookingLockRepository{
		locks: make(map[string]*model.BookingLock),
		now:   time.Now,
	}
}

func (r *memoryBookingLockRepository) Acquire(ctx context.Context, lockID string, ttl time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if held, ok := r.locks[lockID]; ok && !held.Expired(now) {
		return "", bookingserrors.ErrLockHeld
	}

	lock := newLock(lockID, now, ttl)
	r.locks[lockID] = lock
	return lock.Owner, nil
}

func (r *memoryBookingLockRepository) Release(_ context.Context, lockID, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if held, ok := r.locks[lockID]; ok && held.Owner == owner {
		delete(r.locks, lockID)
	}
	return nil
}
