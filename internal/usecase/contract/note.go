package contract

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type AddContractNote struct {
	repo domain.Repository
}

func NewAddContractNote(repo domain.Repository) *AddContractNote {
	return &AddContractNote{repo: repo}
}

func (uc *AddContractNote) Execute(
	ctx context.Context,
	studioID uint,
	contractID uint,
	author string,
	content string,
) (*models.ContractNote, error) {

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, httperr.ErrBusiness("missing_content")
	}

	c, err := uc.repo.Get(ctx, studioID, contractID)
	if err != nil {
		return nil, err
	}

	note := &models.ContractNote{
		ContractID: c.ID,
		Author:     author,
		Content:    content,
	}
	if err := uc.repo.AddNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}
