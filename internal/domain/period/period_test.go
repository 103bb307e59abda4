package period_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/period"
)

func TestDayRange_ExpandsEndOfDay(t *testing.T) {
	r, err := period.DayRange("2024-03-01", "2024-03-31", time.UTC)
	require.NoError(t, err)
	require.NotNil(t, r.From)
	require.NotNil(t, r.To)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *r.From)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC), *r.To)
	assert.True(t, r.Contains(time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)))
}

func TestDayRange_OpenEnds(t *testing.T) {
	r, err := period.DayRange("", "", time.UTC)
	require.NoError(t, err)
	assert.Nil(t, r.From)
	assert.Nil(t, r.To)
	assert.True(t, r.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)))

	r, err = period.DayRange("2024-01-10", "", time.UTC)
	require.NoError(t, err)
	assert.NotNil(t, r.From)
	assert.Nil(t, r.To)
}

func TestDayRange_InvalidDate(t *testing.T) {
	_, err := period.DayRange("2024-13-01", "", time.UTC)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = period.DayRange("", "31/01/2024", time.UTC)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestTrailingMonths_CrossesYearBoundary(t *testing.T) {
	now := time.Date(2024, 2, 15, 10, 30, 0, 0, time.UTC)
	months := period.TrailingMonths(now, 6)

	require.Len(t, months, 6)
	assert.Equal(t, 2023, months[0].Year)
	assert.Equal(t, time.September, months[0].Month)
	assert.Equal(t, 2024, months[5].Year)
	assert.Equal(t, time.February, months[5].Month)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), months[5].End)
	for i := 1; i < len(months); i++ {
		assert.Equal(t, months[i-1].End, months[i].Start)
	}
}

func TestTrailingMonths_EndOfMonthDay(t *testing.T) {
	// el 31 no debe desbordar a meses cortos
	now := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)
	months := period.TrailingMonths(now, 6)

	require.Len(t, months, 6)
	assert.Equal(t, time.December, months[0].Month)
	assert.Equal(t, time.February, months[2].Month)
	assert.Equal(t, time.May, months[5].Month)
}

func TestStamp_LastSecondStaysInsideDay(t *testing.T) {
	loc := time.FixedZone("CLT", -3*3600)
	at := time.Date(2026, 3, 10, 23, 59, 59, 500_000_000, loc)

	stamped := period.Stamp(at.UTC(), loc)
	assert.Equal(t, 0, stamped.Nanosecond())
	assert.Equal(t, loc, stamped.Location())

	day, err := period.DayRange("2026-03-10", "2026-03-10", loc)
	require.NoError(t, err)
	assert.True(t, day.Contains(stamped))
	assert.False(t, day.Contains(at))
}
