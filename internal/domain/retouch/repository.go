package retouch

import (
	"context"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type ListFilter struct {
	Status     string
	ContractID uint
	AssigneeID uint
	OverdueAt  *time.Time
}

type Repository interface {
	GetContract(ctx context.Context, studioID, contractID uint) (*models.Contract, error)
	GetStaffMember(ctx context.Context, studioID, staffID uint) (*models.StaffMember, error)

	Create(ctx context.Context, item *models.RetouchItem) error
	Get(ctx context.Context, studioID, itemID uint) (*models.RetouchItem, error)
	List(ctx context.Context, studioID uint, f ListFilter) ([]models.RetouchItem, error)
	Save(ctx context.Context, item *models.RetouchItem) error
	SaveWithNote(ctx context.Context, item *models.RetouchItem, note *models.RetouchNote) error
	AddNote(ctx context.Context, note *models.RetouchNote) error
}
