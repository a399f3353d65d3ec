package appointment

import (
	"context"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-manager/internal/metrics"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type CompleteAppointment struct {
	statusChange
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *CompleteAppointment {
	return &CompleteAppointment{statusChange{repo: repo, audit: audit, metrics: m}}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	studioID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.run(ctx, studioID, userID, appointmentID,
		"appointment_completed", domain.Complete, nil)
}
