package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/skillswap/internal/db"
	"github.com/oggyb/skillswap/internal/testutil"
)

func TestSeedTestData(t *testing.T) {
	database := testutil.NewDB(t)
	opts := db.DefaultSeedOptions()
	opts.Users = 8

	res, err := db.SeedTestData(database, opts)
	require.NoError(t, err)
	assert.Equal(t, 8, res.Accounts)
	assert.Positive(t, res.Connections)

	var profiles int64
	require.NoError(t, database.Model(&db.Profile{}).Where("onboarding_completed = ?", true).Count(&profiles).Error)
	assert.Equal(t, int64(8), profiles)

	var conns []db.Connection
	require.NoError(t, database.Find(&conns).Error)
	assert.Len(t, conns, res.Connections)
	for _, c := range conns {
		assert.NotEqual(t, c.RequesterID, c.RecipientID)
		assert.Less(t, c.PairLow, c.PairHigh)
		if c.Status == "pending" {
			assert.Nil(t, c.ResolvedAt)
		} else {
			assert.NotNil(t, c.ResolvedAt)
		}
	}

	// reseeding replaces the data and reproduces the same ids
	var firstIDs []string
	require.NoError(t, database.Model(&db.Account{}).Order("email").Pluck("id", &firstIDs).Error)

	again, err := db.SeedTestData(database, opts)
	require.NoError(t, err)
	assert.Equal(t, res, again)

	var secondIDs []string
	require.NoError(t, database.Model(&db.Account{}).Order("email").Pluck("id", &secondIDs).Error)
	assert.Equal(t, firstIDs, secondIDs)
}

func TestSeedTestData_TooFewUsers(t *testing.T) {
	_, err := db.SeedTestData(testutil.NewDB(t), db.SeedOptions{Users: 1})
	assert.Error(t, err)
}
