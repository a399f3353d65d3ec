package contract

import (
	"context"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type ManageContractServices struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewManageContractServices(repo domain.Repository, audit *audit.Dispatcher) *ManageContractServices {
	return &ManageContractServices{repo: repo, audit: audit}
}

func (uc *ManageContractServices) load(ctx context.Context, studioID, contractID uint) (*models.Contract, error) {
	c, err := uc.repo.Get(ctx, studioID, contractID)
	if err != nil {
		return nil, err
	}
	if !domain.IsOpen(domain.Status(c.Status)) {
		return nil, httperr.ErrBusiness("contract_closed")
	}
	return c, nil
}

func (uc *ManageContractServices) Add(
	ctx context.Context,
	studioID uint,
	userID uint,
	contractID uint,
	l ServiceLine,
) (*models.Contract, error) {

	c, err := uc.load(ctx, studioID, contractID)
	if err != nil {
		return nil, err
	}

	line, err := buildServiceLine(ctx, uc.repo, studioID, l)
	if err != nil {
		return nil, err
	}
	line.ContractID = c.ID

	c.AdditionalServices = append(c.AdditionalServices, *line)
	if err := domain.Recalculate(c); err != nil {
		return nil, err
	}

	if err := uc.repo.AddService(ctx, c, line); err != nil {
		return nil, err
	}
	c.AdditionalServices[len(c.AdditionalServices)-1] = *line

	uc.dispatch(studioID, userID, c, "contract_service_added", line.Name)
	return c, nil
}

func (uc *ManageContractServices) Remove(
	ctx context.Context,
	studioID uint,
	userID uint,
	contractID uint,
	lineID uint,
) (*models.Contract, error) {

	c, err := uc.load(ctx, studioID, contractID)
	if err != nil {
		return nil, err
	}

	kept := make([]models.ContractService, 0, len(c.AdditionalServices))
	var removed *models.ContractService
	for i := range c.AdditionalServices {
		if c.AdditionalServices[i].ID == lineID {
			removed = &c.AdditionalServices[i]
			continue
		}
		kept = append(kept, c.AdditionalServices[i])
	}
	if removed == nil {
		return nil, httperr.ErrBusiness("service_line_not_found")
	}
	name := removed.Name

	c.AdditionalServices = kept
	if err := domain.Recalculate(c); err != nil {
		return nil, err
	}

	if err := uc.repo.RemoveService(ctx, c, lineID); err != nil {
		return nil, err
	}

	uc.dispatch(studioID, userID, c, "contract_service_removed", name)
	return c, nil
}

func (uc *ManageContractServices) dispatch(studioID, userID uint, c *models.Contract, action, name string) {
	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &userID,
		Action:   action,
		Entity:   "contract",
		EntityID: &c.ID,
		Metadata: map[string]any{"service": name, "total": c.TotalAmount},
	})
}
