package appointment

import (
	"context"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-manager/internal/metrics"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type MarkNoShow struct {
	statusChange
}

func NewMarkNoShow(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *MarkNoShow {
	return &MarkNoShow{statusChange{repo: repo, audit: audit, metrics: m}}
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	studioID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.run(ctx, studioID, userID, appointmentID,
		"appointment_no_show", domain.MarkNoShow, nil)
}
