package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-manager/internal/metrics"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type CancelAppointment struct {
	statusChange
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *CancelAppointment {
	return &CancelAppointment{statusChange{repo: repo, audit: audit, metrics: m}}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	studioID uint,
	userID uint,
	appointmentID uint,
	reason string,
) (*models.Appointment, error) {
	return uc.run(ctx, studioID, userID, appointmentID, "appointment_cancelled",
		func(ap *models.Appointment, now time.Time) error {
			return domain.Cancel(ap, reason, now)
		},
		map[string]any{"reason": reason},
	)
}
