package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	loc := Location("Not/AZone")
	assert.Equal(t, DefaultTimezone, loc.String())

	assert.Equal(t, "Asia/Bangkok", Location("Asia/Bangkok").String())
}

func TestStartOfDay(t *testing.T) {
	loc := Location(DefaultTimezone)
	ts := time.Date(2026, 3, 14, 17, 45, 12, 0, loc)

	got := StartOfDay(ts)

	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, loc), got)
}

func TestStartOfMonth(t *testing.T) {
	loc := Location(DefaultTimezone)
	got := StartOfMonth(2026, time.February, loc)
	assert.Equal(t, 1, got.Day())
	assert.Equal(t, time.February, got.Month())
	assert.Equal(t, time.March, got.AddDate(0, 1, 0).Month())
}
