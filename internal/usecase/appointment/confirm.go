package appointment

import (
	"context"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-manager/internal/metrics"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type ConfirmAppointment struct {
	statusChange
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *ConfirmAppointment {
	return &ConfirmAppointment{statusChange{repo: repo, audit: audit, metrics: m}}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	studioID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.run(ctx, studioID, userID, appointmentID,
		"appointment_confirmed", domain.Confirm, nil)
}
