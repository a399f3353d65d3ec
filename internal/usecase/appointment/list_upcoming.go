package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-manager/internal/dto"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

const (
	defaultUpcomingDays = 7
	maxUpcomingDays     = 90
)

type ListUpcomingAppointments struct {
	repo domain.Repository
}

func NewListUpcomingAppointments(repo domain.Repository) *ListUpcomingAppointments {
	return &ListUpcomingAppointments{repo: repo}
}

// Execute lists pending and confirmed appointments from now to the end of
// the day `days` days ahead.
func (uc *ListUpcomingAppointments) Execute(
	ctx context.Context,
	studioID uint,
	days int,
) ([]dto.AppointmentListDTO, error) {

	if days <= 0 {
		days = defaultUpcomingDays
	}
	if days > maxUpcomingDays {
		days = maxUpcomingDays
	}

	studio, err := uc.repo.GetStudioByID(ctx, studioID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(studio.Timezone)
	now := timezone.NowIn(studio.Timezone)
	end := timezone.StartOfDay(now).AddDate(0, 0, days+1)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		studioID,
		now,
		end,
		domain.BlockingStatuses(),
	)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentList(appointments, loc), nil
}
