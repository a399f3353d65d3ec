package contract

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

// UpdateContractInput carries only the fields the edit form sends.
type UpdateContractInput struct {
	StudioID   uint
	UserID     uint
	ContractID uint

	WeddingDate *time.Time
	Location    *string
	Discount    *int64
}

type UpdateContract struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateContract(repo domain.Repository, audit *audit.Dispatcher) *UpdateContract {
	return &UpdateContract{repo: repo, audit: audit}
}

func (uc *UpdateContract) Execute(ctx context.Context, in UpdateContractInput) (*models.Contract, error) {
	c, err := uc.repo.Get(ctx, in.StudioID, in.ContractID)
	if err != nil {
		return nil, err
	}
	if !domain.IsOpen(domain.Status(c.Status)) {
		return nil, httperr.ErrBusiness("contract_closed")
	}

	if in.WeddingDate != nil {
		c.WeddingDate = in.WeddingDate
	}
	if in.Location != nil {
		c.Location = strings.TrimSpace(*in.Location)
	}
	if in.Discount != nil {
		c.Discount = *in.Discount
		if err := domain.Recalculate(c); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		StudioID: in.StudioID,
		UserID:   &in.UserID,
		Action:   "contract_updated",
		Entity:   "contract",
		EntityID: &c.ID,
	})

	return c, nil
}
