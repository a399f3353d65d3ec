package contract

import (
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	"github.com/BruksfildServices01/studio-manager/internal/domain/fsm"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

// NextStep is one button of the status dialog.
type NextStep struct {
	Status   string      `json:"status"`
	Display  fsm.Display `json:"display"`
	Required []string    `json:"required"`
}

type ContractView struct {
	models.Contract
	Display     fsm.Display `json:"display"`
	Outstanding int64       `json:"outstanding"`
	Next        []NextStep  `json:"next"`
}

func NewContractView(c models.Contract) ContractView {
	st := domain.Status(c.Status)

	next := []NextStep{}
	for _, to := range domain.Machine.Next(st) {
		req := domain.RequiredFields(to)
		if req == nil {
			req = []string{}
		}
		next = append(next, NextStep{
			Status:   string(to),
			Display:  domain.Machine.Display(to),
			Required: req,
		})
	}

	return ContractView{
		Contract:    c,
		Display:     domain.Machine.Display(st),
		Outstanding: c.Outstanding(),
		Next:        next,
	}
}
