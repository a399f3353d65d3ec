package retouch

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/retouch"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type AddRetouchNote struct {
	repo domain.Repository
}

func NewAddRetouchNote(repo domain.Repository) *AddRetouchNote {
	return &AddRetouchNote{repo: repo}
}

func (uc *AddRetouchNote) Execute(
	ctx context.Context,
	studioID uint,
	itemID uint,
	author string,
	content string,
) (*models.RetouchNote, error) {

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, httperr.ErrBusiness("missing_content")
	}

	item, err := uc.repo.Get(ctx, studioID, itemID)
	if err != nil {
		return nil, err
	}

	note := &models.RetouchNote{
		RetouchItemID: item.ID,
		Author:        author,
		Content:       content,
	}
	if err := uc.repo.AddNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}
