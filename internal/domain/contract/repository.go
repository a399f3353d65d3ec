package contract

import (
	"context"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type ListFilter struct {
	Status      string
	Query       string
	WeddingFrom *time.Time
	WeddingTo   *time.Time
	CustomerID  uint
}

type Repository interface {
	GetCustomer(ctx context.Context, studioID, customerID uint) (*models.Customer, error)
	GetCatalogItem(ctx context.Context, studioID, itemID uint) (*models.CatalogItem, error)

	// Create stores the contract with its service lines and first history
	// entry in one transaction.
	Create(ctx context.Context, c *models.Contract, note *models.ContractNote) error
	Get(ctx context.Context, studioID, contractID uint) (*models.Contract, error)
	List(ctx context.Context, studioID uint, f ListFilter) ([]models.Contract, error)
	Save(ctx context.Context, c *models.Contract) error

	// Transition persists the contract with its history entry and, when the
	// contract enters retouch, makes sure a retouch item exists.
	Transition(ctx context.Context, c *models.Contract, note *models.ContractNote) error
	AddNote(ctx context.Context, note *models.ContractNote) error

	AddService(ctx context.Context, c *models.Contract, line *models.ContractService) error
	RemoveService(ctx context.Context, c *models.Contract, lineID uint) error

	// Save, Transition, AddService and RemoveService never write paid_amount;
	// they refresh it into c from the stored row.

	// RecordPayment increments paid_amount and stores the income transaction
	// together.
	RecordPayment(ctx context.Context, c *models.Contract, tx *models.Transaction) error
	HasExternalPayment(ctx context.Context, ref string) (bool, error)
}
