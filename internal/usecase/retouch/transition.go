package retouch

import (
	"context"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/retouch"
	"github.com/BruksfildServices01/studio-manager/internal/metrics"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

type ChangeRetouchStatus struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewChangeRetouchStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *ChangeRetouchStatus {
	return &ChangeRetouchStatus{repo: repo, audit: audit, metrics: m}
}

func (uc *ChangeRetouchStatus) Execute(
	ctx context.Context,
	studioID uint,
	userID uint,
	itemID uint,
	in domain.TransitionInput,
) (*models.RetouchItem, error) {

	item, err := uc.repo.Get(ctx, studioID, itemID)
	if err != nil {
		return nil, err
	}

	from := item.Status
	note, err := domain.Apply(item, in, timezone.Now())
	if err != nil {
		return nil, err
	}

	if err := uc.repo.SaveWithNote(ctx, item, note); err != nil {
		return nil, err
	}
	item.Notes = append(item.Notes, *note)

	uc.metrics.Transition("retouch", item.Status)
	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &userID,
		Action:   "retouch_status_changed",
		Entity:   "retouch_item",
		EntityID: &item.ID,
		Metadata: map[string]any{"from": from, "to": item.Status, "revisions": item.RevisionCount},
	})

	return item, nil
}
