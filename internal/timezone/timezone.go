package timezone

import (
	"sync"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "Asia/Ho_Chi_Minh"

var (
	mu       sync.RWMutex
	fallback = DefaultTimezone
)

// SetDefault changes the fallback used for studios without a valid timezone.
func SetDefault(tz string) {
	if !IsValid(tz) {
		return
	}
	mu.Lock()
	fallback = tz
	mu.Unlock()
}

func defaultName() string {
	mu.RLock()
	defer mu.RUnlock()
	return fallback
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(defaultName())
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(defaultName()))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func StartOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, loc)
}
