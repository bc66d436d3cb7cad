package mongo

import (
	"testing"

	"hotelbooking/internal/bookings/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCollections(t *testing.T) {
	defs := Collections()
	require.Len(t, defs, 2)

	assert.Equal(t, repository.CollectionName, defs[0].Name)
	assert.Equal(t, repository.LockCollectionName, defs[1].Name)

	for _, def := range defs {
		assert.NotEmpty(t, def.Indexes, def.Name)
		assert.Contains(t, def.Validator, "$jsonSchema", def.Name)
	}
}

func TestBookingsIndexes_CoverDateRange(t *testing.T) {
	keys, ok := BookingsIndexes[0].Keys.(bson.D)
	require.True(t, ok)
	assert.Equal(t, bson.D{{Key: "start_date", Value: 1}, {Key: "end_date", Value: 1}}, keys)
}

func TestBookingLocksIndexes_ExpireImmediately(t *testing.T) {
	opts := BookingLocksIndexes[0].Options
	require.NotNil(t, opts)
	require.NotNil(t, opts.ExpireAfterSeconds)
	assert.Equal(t, int32(0), *opts.ExpireAfterSeconds)
}
