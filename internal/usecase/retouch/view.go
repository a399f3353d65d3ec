package retouch

import (
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/domain/fsm"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/retouch"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type ItemView struct {
	models.RetouchItem
	Display fsm.Display `json:"display"`
	Next    []string    `json:"next"`
	Overdue bool        `json:"overdue"`
}

func NewItemView(item models.RetouchItem, now time.Time) ItemView {
	st := domain.Status(item.Status)

	next := []string{}
	for _, s := range domain.Machine.Next(st) {
		next = append(next, string(s))
	}

	return ItemView{
		RetouchItem: item,
		Display:     domain.Machine.Display(st),
		Next:        next,
		Overdue:     domain.IsOverdue(&item, now),
	}
}
