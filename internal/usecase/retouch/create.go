package retouch

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/retouch"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type CreateRetouchInput struct {
	StudioID   uint
	UserID     uint
	ContractID uint
	Title      string
	AssigneeID *uint
	Deadline   *time.Time
}

type CreateRetouchItem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateRetouchItem(repo domain.Repository, audit *audit.Dispatcher) *CreateRetouchItem {
	return &CreateRetouchItem{repo: repo, audit: audit}
}

func (uc *CreateRetouchItem) Execute(ctx context.Context, in CreateRetouchInput) (*models.RetouchItem, error) {
	if in.ContractID == 0 {
		return nil, httperr.ErrBusiness("missing_contract")
	}

	c, err := uc.repo.GetContract(ctx, in.StudioID, in.ContractID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = "Album " + c.Customer.Name
	}

	item := &models.RetouchItem{
		StudioID:   in.StudioID,
		ContractID: c.ID,
		Title:      title,
		Status:     string(domain.InitialStatus()),
		Deadline:   utc(in.Deadline),
	}

	if in.AssigneeID != nil {
		staff, err := assignable(ctx, uc.repo, in.StudioID, *in.AssigneeID)
		if err != nil {
			return nil, err
		}
		item.AssigneeID = &staff.ID
	}

	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		StudioID: in.StudioID,
		UserID:   &in.UserID,
		Action:   "retouch_created",
		Entity:   "retouch_item",
		EntityID: &item.ID,
		Metadata: map[string]any{"contract_id": c.ID},
	})

	return item, nil
}

func assignable(ctx context.Context, repo domain.Repository, studioID, staffID uint) (*models.StaffMember, error) {
	staff, err := repo.GetStaffMember(ctx, studioID, staffID)
	if err != nil {
		return nil, err
	}
	if staff.Status != "active" {
		return nil, httperr.ErrBusiness("staff_inactive")
	}
	return staff, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
