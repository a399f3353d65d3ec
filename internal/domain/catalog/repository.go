package catalog

import (
	"context"

	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type ListFilter struct {
	Kind   string
	Active *bool
	Query  string
}

type Repository interface {
	List(ctx context.Context, studioID uint, f ListFilter) ([]models.CatalogItem, error)
	Get(ctx context.Context, studioID, itemID uint) (*models.CatalogItem, error)
	Create(ctx context.Context, item *models.CatalogItem) error
	Save(ctx context.Context, item *models.CatalogItem) error
	Delete(ctx context.Context, studioID, itemID uint) error

	// ContractsUsing returns contracts with their service lines that
	// reference any of itemIDs as package or additional service.
	ContractsUsing(ctx context.Context, studioID uint, itemIDs []uint) ([]models.Contract, error)
}
