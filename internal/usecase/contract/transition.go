package contract

import (
	"context"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	"github.com/BruksfildServices01/studio-manager/internal/metrics"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

type ChangeContractStatus struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewChangeContractStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *ChangeContractStatus {
	return &ChangeContractStatus{repo: repo, audit: audit, metrics: m}
}

// Execute validates the move and the dialog fields, then stores the contract
// and its history entry together. Nothing is written on a validation error.
func (uc *ChangeContractStatus) Execute(
	ctx context.Context,
	studioID uint,
	userID uint,
	contractID uint,
	in domain.TransitionInput,
) (*models.Contract, error) {

	c, err := uc.repo.Get(ctx, studioID, contractID)
	if err != nil {
		return nil, err
	}

	from := c.Status
	note, err := domain.Apply(c, in, timezone.Now())
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Transition(ctx, c, note); err != nil {
		return nil, err
	}
	c.NoteHistory = append(c.NoteHistory, *note)

	uc.metrics.Transition("contract", c.Status)
	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &userID,
		Action:   "contract_status_changed",
		Entity:   "contract",
		EntityID: &c.ID,
		Metadata: map[string]any{"from": from, "to": c.Status},
	})

	return c, nil
}
