package customer

import (
	"context"

	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type ListFilter struct {
	Status string
	Query  string
}

type Repository interface {
	List(ctx context.Context, studioID uint, f ListFilter) ([]models.Customer, error)
	Get(ctx context.Context, studioID, customerID uint) (*models.Customer, error)
	PhoneTaken(ctx context.Context, studioID uint, phone string, exceptID uint) (bool, error)
	Create(ctx context.Context, c *models.Customer) error
	Save(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, studioID, customerID uint) error

	AddNote(ctx context.Context, note *models.CustomerNote) error
	SaveSummary(ctx context.Context, c *models.Customer) error
}

type Summarizer interface {
	Summarize(ctx context.Context, customerName string, notes []string) (string, error)
}
