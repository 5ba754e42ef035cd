package mongostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestIndexModels_BookingKey(t *testing.T) {
	models := IndexModels()

	booking, ok := models[BookingsCollection]
	require.True(t, ok)
	assert.Equal(t, bson.D{
		{Key: "treatment", Value: 1},
		{Key: "date", Value: 1},
		{Key: "patient", Value: 1},
	}, booking.Keys, "slot must not be part of the key")
	require.NotNil(t, booking.Options)
	require.NotNil(t, booking.Options.Unique)
	assert.True(t, *booking.Options.Unique)
}

func TestIndexModels_UniqueEmails(t *testing.T) {
	models := IndexModels()
	for _, coll := range []string{UsersCollection, DoctorsCollection} {
		m, ok := models[coll]
		require.True(t, ok, coll)
		assert.Equal(t, bson.D{{Key: "email", Value: 1}}, m.Keys, coll)
		require.NotNil(t, m.Options.Unique, coll)
		assert.True(t, *m.Options.Unique, coll)
	}
}
