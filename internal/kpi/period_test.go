package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaisecz/health-trends/internal/domain"
)

func TestCurrentAndPreviousRange(t *testing.T) {
	now := time.Date(2024, 3, 31, 15, 30, 0, 0, time.UTC)

	current, previous, err := CurrentAndPreviousRange(now, 30)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", current.StartDay())
	assert.Equal(t, "2024-03-31", current.EndDay())
	assert.Equal(t, "2024-01-31", previous.StartDay())
	assert.Equal(t, "2024-03-01", previous.EndDay())
	assert.True(t, previous.End.Equal(current.Start), "previous must end where current starts")
	assert.Equal(t, current.Days(), previous.Days())
	assert.Equal(t, "Last 30 days", current.Label)
	assert.Equal(t, "Previous 30 days", previous.Label)

	assert.Equal(t, "2024-03-01T00:00:00.000Z", current.QueryFrom())
	assert.Equal(t, "2024-03-31T23:59:59.000Z", current.QueryTo())
}

func TestCurrentAndPreviousRange_Presets(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	for _, days := range Presets {
		current, previous, err := CurrentAndPreviousRange(now, days)
		require.NoError(t, err)
		assert.Equal(t, days, current.Days())
		assert.Equal(t, days, previous.Days())
	}
}

func TestCurrentAndPreviousRange_NonUTCInput(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 22:00 local on the 10th is already the 11th in UTC.
	now := time.Date(2024, 5, 10, 22, 0, 0, 0, loc)

	current, _, err := CurrentAndPreviousRange(now, 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-11", current.EndDay())
}

func TestCurrentAndPreviousRange_Invalid(t *testing.T) {
	now := time.Now()
	for _, days := range []int{0, -7, MaxLookbackDays + 1} {
		_, _, err := CurrentAndPreviousRange(now, days)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "days=%d", days)
	}
}

func TestHistoryRange(t *testing.T) {
	now := time.Date(2024, 3, 31, 8, 0, 0, 0, time.UTC)
	history, before := HistoryRange(now)

	assert.Equal(t, "2023-03-31", history.StartDay())
	assert.Equal(t, "2024-03-31", history.EndDay())
	assert.Equal(t, "Full history", history.Label)
	assert.True(t, before.End.Equal(history.Start))
	assert.Equal(t, "2022-03-31", before.StartDay())
}
