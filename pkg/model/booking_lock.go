package model

import "time"

// BookingLock is an advisory lock document guarding the room while a write is checked and applied.
// Owner identifies the holder so only it can release the lock.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	Owner     string    `bson:"owner" json:"owner"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

func (l *BookingLock) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}
