package appointment

import (
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/models"
)

// At places an "HH:MM" clock value on the day of ref, in ref's location.
func At(ref time.Time, hm string) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		ref.Year(), ref.Month(), ref.Day(),
		t.Hour(), t.Minute(), 0, 0,
		ref.Location(),
	), true
}

// IsWithinWorkingHours checks the studio schedule including the lunch break.
func IsWithinWorkingHours(wh *models.WorkingHours, start, end time.Time) bool {
	if wh == nil || !wh.Active {
		return false
	}

	workStart, ok1 := At(start, wh.StartTime)
	workEnd, ok2 := At(start, wh.EndTime)
	if !ok1 || !ok2 {
		return false
	}

	if start.Before(workStart) || end.After(workEnd) {
		return false
	}

	lunchStart, ok1 := At(start, wh.LunchStart)
	lunchEnd, ok2 := At(start, wh.LunchEnd)
	if ok1 && ok2 && start.Before(lunchEnd) && end.After(lunchStart) {
		return false
	}

	return true
}

// Shoots on location follow the couple's day instead of studio hours.
const (
	onLocationStart = "05:00"
	onLocationEnd   = "23:00"
)

// OnLocation reports whether k is shot away from the studio.
func OnLocation(k Kind) bool {
	return k == KindPreWedding || k == KindWeddingDay
}

// HoursFor returns the schedule an appointment of kind k must fit. Kinds shot
// on location get a fixed window with no lunch break, every day of the week.
func HoursFor(k Kind, studio *models.WorkingHours) *models.WorkingHours {
	if !OnLocation(k) {
		return studio
	}
	wh := &models.WorkingHours{
		StartTime: onLocationStart,
		EndTime:   onLocationEnd,
		Active:    true,
	}
	if studio != nil {
		wh.StudioID = studio.StudioID
		wh.Weekday = studio.Weekday
	}
	return wh
}

func ValidClock(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}
