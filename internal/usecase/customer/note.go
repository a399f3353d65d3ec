package customer

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/customer"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type AddCustomerNote struct {
	repo domain.Repository
}

func NewAddCustomerNote(repo domain.Repository) *AddCustomerNote {
	return &AddCustomerNote{repo: repo}
}

func (uc *AddCustomerNote) Execute(
	ctx context.Context,
	studioID uint,
	customerID uint,
	author string,
	content string,
) (*models.CustomerNote, error) {

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, httperr.ErrBusiness("missing_content")
	}

	c, err := uc.repo.Get(ctx, studioID, customerID)
	if err != nil {
		return nil, err
	}

	note := &models.CustomerNote{
		CustomerID: c.ID,
		Author:     author,
		Content:    content,
	}
	if err := uc.repo.AddNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}
