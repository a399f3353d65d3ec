package retouch

import (
	"context"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/retouch"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

type GetRetouchItem struct {
	repo domain.Repository
}

func NewGetRetouchItem(repo domain.Repository) *GetRetouchItem {
	return &GetRetouchItem{repo: repo}
}

func (uc *GetRetouchItem) Execute(ctx context.Context, studioID, itemID uint) (*ItemView, error) {
	item, err := uc.repo.Get(ctx, studioID, itemID)
	if err != nil {
		return nil, err
	}
	v := NewItemView(*item, timezone.Now())
	return &v, nil
}

type ListRetouchItems struct {
	repo domain.Repository
}

func NewListRetouchItems(repo domain.Repository) *ListRetouchItems {
	return &ListRetouchItems{repo: repo}
}

// Execute lists items in deadline order. With overdue set only unfinished
// items past their deadline are returned.
func (uc *ListRetouchItems) Execute(ctx context.Context, studioID uint, f domain.ListFilter, overdue bool) ([]ItemView, error) {
	if f.Status != "" && !domain.Machine.Valid(domain.Status(f.Status)) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	now := timezone.Now()
	if overdue {
		f.OverdueAt = &now
	}

	rows, err := uc.repo.List(ctx, studioID, f)
	if err != nil {
		return nil, err
	}

	out := make([]ItemView, 0, len(rows))
	for _, item := range rows {
		out = append(out, NewItemView(item, now))
	}
	return out, nil
}
