package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	t.Run("nil end", func(t *testing.T) {
		assert.Nil(t, DaysRemaining(nil, now))
	})

	t.Run("future end rounds up", func(t *testing.T) {
		end := now.Add(36 * time.Hour)
		days := DaysRemaining(&end, now)
		assert.Equal(t, 2, *days)
	})

	t.Run("whole days", func(t *testing.T) {
		end := now.AddDate(0, 0, 30)
		days := DaysRemaining(&end, now)
		assert.Equal(t, 30, *days)
	})

	t.Run("expired nine days ago", func(t *testing.T) {
		end := now.AddDate(0, 0, -9)
		days := DaysRemaining(&end, now)
		assert.Equal(t, -9, *days)
	})
}

func TestTrialTimeRemaining(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("nil trial end", func(t *testing.T) {
		assert.Nil(t, TrialTimeRemaining(nil, now))
	})

	t.Run("expired", func(t *testing.T) {
		end := now.Add(-time.Minute)
		remaining := TrialTimeRemaining(&end, now)
		assert.True(t, remaining.Expired)
		assert.Equal(t, 0, remaining.Days)
		assert.Equal(t, 0, remaining.TotalMinutes)
	})

	t.Run("exactly now counts as expired", func(t *testing.T) {
		end := now
		remaining := TrialTimeRemaining(&end, now)
		assert.True(t, remaining.Expired)
	})

	t.Run("decomposition", func(t *testing.T) {
		end := now.Add(2*24*time.Hour + 3*time.Hour + 4*time.Minute)
		remaining := TrialTimeRemaining(&end, now)
		assert.False(t, remaining.Expired)
		assert.Equal(t, 2, remaining.Days)
		assert.Equal(t, 3, remaining.Hours)
		assert.Equal(t, 4, remaining.Minutes)
		assert.Equal(t, 2*24*60+3*60+4, remaining.TotalMinutes)
	})
}
