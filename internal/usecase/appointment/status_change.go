package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-manager/internal/metrics"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

// statusChange loads the appointment, applies one domain action in the
// studio's clock and persists it.
type statusChange struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func (s statusChange) run(
	ctx context.Context,
	studioID uint,
	userID uint,
	appointmentID uint,
	action string,
	apply func(ap *models.Appointment, now time.Time) error,
	meta map[string]any,
) (*models.Appointment, error) {

	studio, err := s.repo.GetStudioByID(ctx, studioID)
	if err != nil {
		return nil, err
	}

	ap, err := s.repo.GetAppointment(ctx, studioID, appointmentID)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	if err := apply(ap, timezone.NowIn(studio.Timezone)); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	s.metrics.Transition("appointment", ap.Status)

	if meta == nil {
		meta = map[string]any{}
	}
	meta["from"] = from
	meta["to"] = ap.Status

	s.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &userID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: meta,
	})

	return ap, nil
}
