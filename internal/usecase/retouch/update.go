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

// UpdateRetouchInput leaves nil fields untouched. A zero AssigneeID
// clears the assignee, and so does ClearDeadline for the deadline.
type UpdateRetouchInput struct {
	StudioID uint
	UserID   uint
	ItemID   uint

	Title         *string
	AssigneeID    *uint
	Deadline      *time.Time
	ClearDeadline bool
}

type UpdateRetouchItem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateRetouchItem(repo domain.Repository, audit *audit.Dispatcher) *UpdateRetouchItem {
	return &UpdateRetouchItem{repo: repo, audit: audit}
}

func (uc *UpdateRetouchItem) Execute(ctx context.Context, in UpdateRetouchInput) (*models.RetouchItem, error) {
	item, err := uc.repo.Get(ctx, in.StudioID, in.ItemID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, httperr.ErrBusiness("missing_title")
		}
		item.Title = title
	}

	if in.AssigneeID != nil {
		if *in.AssigneeID == 0 {
			item.AssigneeID = nil
			item.Assignee = nil
		} else {
			staff, err := assignable(ctx, uc.repo, in.StudioID, *in.AssigneeID)
			if err != nil {
				return nil, err
			}
			item.AssigneeID = &staff.ID
			item.Assignee = staff
		}
	}

	switch {
	case in.ClearDeadline:
		item.Deadline = nil
	case in.Deadline != nil:
		item.Deadline = utc(in.Deadline)
	}

	if err := uc.repo.Save(ctx, item); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		StudioID: in.StudioID,
		UserID:   &in.UserID,
		Action:   "retouch_updated",
		Entity:   "retouch_item",
		EntityID: &item.ID,
	})

	return item, nil
}
