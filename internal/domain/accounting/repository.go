package accounting

import (
	"context"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/models"
)

// ListFilter bounds are [From, To).
type ListFilter struct {
	Type     string
	Category string
	Status   string
	Query    string
	From     *time.Time
	To       *time.Time
}

type Repository interface {
	GetStudioByID(ctx context.Context, studioID uint) (*models.Studio, error)

	List(ctx context.Context, studioID uint, f ListFilter) ([]models.Transaction, error)
	Get(ctx context.Context, studioID, txID uint) (*models.Transaction, error)
	Create(ctx context.Context, t *models.Transaction) error
	Save(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, studioID, txID uint) error
}
