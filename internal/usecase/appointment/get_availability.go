package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute returns the free slots of in.Date. The date is read as a calendar
// day in the studio's timezone. Duration defaults to the kind's length.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	if in.Kind == "" {
		in.Kind = domain.KindConsultation
	}
	if in.Duration <= 0 {
		in.Duration = domain.DefaultDuration(in.Kind)
	}

	studio, err := uc.repo.GetStudioByID(ctx, in.StudioID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(studio.Timezone)
	day := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)

	var wh *models.WorkingHours
	if !domain.OnLocation(in.Kind) {
		wh, err = uc.repo.GetWorkingHours(ctx, in.StudioID, int(day.Weekday()))
		if err != nil {
			if httperr.IsBusiness(err, "working_hours_not_found") {
				return []domain.TimeSlot{}, nil
			}
			return nil, err
		}
	}
	wh = domain.HoursFor(in.Kind, wh)
	if !wh.Active {
		return []domain.TimeSlot{}, nil
	}

	busy, err := uc.repo.ListBusy(
		ctx,
		in.StudioID,
		in.StaffMemberID,
		day,
		day.AddDate(0, 0, 1),
	)
	if err != nil {
		return nil, err
	}

	for i := range busy {
		busy[i].StartTime = busy[i].StartTime.In(loc)
		busy[i].EndTime = busy[i].EndTime.In(loc)
	}

	slots := domain.Slots(wh, day, in.Duration, busy)

	// slots already behind the studio clock are not offered
	now := timezone.NowIn(studio.Timezone)
	out := slots[:0]
	for _, s := range slots {
		if start, ok := domain.At(day, s.Start); ok && start.After(now) {
			out = append(out, s)
		}
	}
	return out, nil
}
