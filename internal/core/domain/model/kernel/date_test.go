package kernel_test

import (
	"testing"
	"time"

	"mfgorders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	t.Run("adds days across month boundaries", func(t *testing.T) {
		d := kernel.NewDate(2025, time.January, 1)

		assert.Equal(t, "2025-01-26", d.AddDays(25).String())
		assert.Equal(t, "2025-02-05", d.AddDays(35).String())
	})

	t.Run("parses and formats", func(t *testing.T) {
		d, err := kernel.ParseDate("2025-03-09")
		require.NoError(t, err)
		assert.True(t, d.IsEqual(kernel.NewDate(2025, time.March, 9)))
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		_, err := kernel.ParseDate("09/03/2025")
		require.Error(t, err)
	})

	t.Run("optional parse", func(t *testing.T) {
		d, err := kernel.ParseOptionalDate("")
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("DateOf drops the time of day in UTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+9", 9*3600)
		d := kernel.DateOf(time.Date(2025, time.May, 2, 3, 0, 0, 0, loc))

		assert.Equal(t, "2025-05-01", d.String())
	})

	t.Run("zero date renders empty", func(t *testing.T) {
		var d kernel.Date
		assert.True(t, d.IsZero())
		assert.Empty(t, d.String())
	})
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2025, time.June, 30, 22, 15, 0, 0, time.UTC)
	clock := kernel.FixedClock{At: at}

	assert.Equal(t, "2025-06-30", clock.Today().String())
	assert.Equal(t, at, clock.Now())
}
