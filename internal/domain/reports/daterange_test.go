package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRange(t *testing.T) {
	r := NormalizeRange("2024-01-01", "2024-01-31")

	require.NotNil(t, r.Start)
	require.NotNil(t, r.End)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *r.Start)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *r.End)
}

func TestNormalizeRange_SameDay(t *testing.T) {
	r := NormalizeRange("2024-03-10", "2024-03-10")

	assert.True(t, r.Contains(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2024, 3, 10, 23, 59, 59, 999_000_000, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 3, 9, 23, 59, 59, 0, time.UTC)))
}

func TestNormalizeRange_YearAndLeapBoundaries(t *testing.T) {
	r := NormalizeRange("", "2023-12-31")
	assert.Nil(t, r.Start)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *r.End)

	leap := NormalizeRange("", "2024-02-28")
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), *leap.End)
}

func TestNormalizeRange_MissingOrMalformed(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
	}{
		{"empty", "", ""},
		{"blank", "  ", " "},
		{"garbage", "yesterday", "31/01/2024"},
		{"invalid day", "2024-02-30", "2024-13-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NormalizeRange(tt.from, tt.to)
			assert.True(t, r.IsUnbounded())
			assert.True(t, r.Contains(time.Now()))
		})
	}
}

func TestNormalizeRange_ZoneIndependent(t *testing.T) {
	r := NormalizeRange("2024-06-01", "")

	// 2024-06-01 01:00 in UTC+3 is still May 31 in UTC
	loc := time.FixedZone("UTC+3", 3*60*60)
	assert.False(t, r.Contains(time.Date(2024, 6, 1, 1, 0, 0, 0, loc)))
	assert.True(t, r.Contains(time.Date(2024, 6, 1, 4, 0, 0, 0, loc)))
}

func TestRange_Before(t *testing.T) {
	assert.Nil(t, NormalizeRange("", "2024-01-01").Before())

	b := NormalizeRange("2024-01-05", "2024-01-10").Before()
	require.NotNil(t, b)
	assert.Nil(t, b.Start)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), *b.End)
}
