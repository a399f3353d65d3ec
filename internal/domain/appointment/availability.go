package appointment

import (
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type AvailabilityInput struct {
	StudioID      uint
	StaffMemberID *uint
	Kind          Kind
	Date          time.Time
	Duration      time.Duration
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Slots walks the working day in steps of duration and keeps the slots that
// miss lunch and every busy appointment. busy must be sorted by start time.
func Slots(wh *models.WorkingHours, day time.Time, duration time.Duration, busy []models.Appointment) []TimeSlot {
	slots := []TimeSlot{}
	if wh == nil || !wh.Active || duration <= 0 {
		return slots
	}

	dayStart, ok1 := At(day, wh.StartTime)
	dayEnd, ok2 := At(day, wh.EndTime)
	if !ok1 || !ok2 {
		return slots
	}

	lunchStart, ok1 := At(day, wh.LunchStart)
	lunchEnd, ok2 := At(day, wh.LunchEnd)
	hasLunch := ok1 && ok2

	loc := day.Location()
	idx := 0

	for cur := dayStart; !cur.Add(duration).After(dayEnd); cur = cur.Add(duration) {
		slotStart := cur
		slotEnd := cur.Add(duration)

		if hasLunch && slotStart.Before(lunchEnd) && slotEnd.After(lunchStart) {
			continue
		}

		for idx < len(busy) && !busy[idx].EndTime.After(slotStart) {
			idx++
		}

		conflict := false
		for j := idx; j < len(busy) && busy[j].StartTime.Before(slotEnd); j++ {
			if slotStart.Before(busy[j].EndTime) && slotEnd.After(busy[j].StartTime) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, TimeSlot{
				Start: slotStart.In(loc).Format("15:04"),
				End:   slotEnd.In(loc).Format("15:04"),
			})
		}
	}

	return slots
}
