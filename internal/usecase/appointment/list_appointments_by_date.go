package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-manager/internal/dto"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lists the appointments of one calendar day in the studio's
// timezone, optionally filtered by status.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	studioID uint,
	date time.Time,
	statuses []string,
) ([]dto.AppointmentListDTO, error) {

	studio, err := uc.repo.GetStudioByID(ctx, studioID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(studio.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		studioID,
		start,
		end,
		statuses,
	)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentList(appointments, loc), nil
}
