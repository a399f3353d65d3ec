package customer

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/customer"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

// ======================================================
// QUERIES
// ======================================================

type ListCustomers struct {
	repo domain.Repository
}

func NewListCustomers(repo domain.Repository) *ListCustomers {
	return &ListCustomers{repo: repo}
}

func (uc *ListCustomers) Execute(ctx context.Context, studioID uint, f domain.ListFilter) ([]models.Customer, error) {
	if f.Status != "" {
		st, err := domain.ParseStatus(f.Status)
		if err != nil {
			return nil, err
		}
		f.Status = string(st)
	}
	return uc.repo.List(ctx, studioID, f)
}

type GetCustomer struct {
	repo domain.Repository
}

func NewGetCustomer(repo domain.Repository) *GetCustomer {
	return &GetCustomer{repo: repo}
}

// Execute returns the customer with notes newest first.
func (uc *GetCustomer) Execute(ctx context.Context, studioID, customerID uint) (*models.Customer, error) {
	c, err := uc.repo.Get(ctx, studioID, customerID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(c.Notes, func(i, j int) bool {
		return c.Notes[i].CreatedAt.After(c.Notes[j].CreatedAt) ||
			(c.Notes[i].CreatedAt.Equal(c.Notes[j].CreatedAt) && c.Notes[i].ID > c.Notes[j].ID)
	})
	return c, nil
}

// ======================================================
// COMMANDS
// ======================================================

type SaveCustomer struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSaveCustomer(repo domain.Repository, audit *audit.Dispatcher) *SaveCustomer {
	return &SaveCustomer{repo: repo, audit: audit}
}

func (uc *SaveCustomer) Create(ctx context.Context, studioID, userID uint, in CustomerInput) (*models.Customer, error) {
	c := &models.Customer{StudioID: studioID}
	if err := in.apply(c); err != nil {
		return nil, err
	}

	if err := uc.ensureUniquePhone(ctx, studioID, c.Phone, 0); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	uc.dispatch(studioID, userID, "customer_created", c)
	return c, nil
}

func (uc *SaveCustomer) Update(ctx context.Context, studioID, userID, customerID uint, in CustomerInput) (*models.Customer, error) {
	c, err := uc.repo.Get(ctx, studioID, customerID)
	if err != nil {
		return nil, err
	}
	if err := in.apply(c); err != nil {
		return nil, err
	}

	if err := uc.ensureUniquePhone(ctx, studioID, c.Phone, c.ID); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	uc.dispatch(studioID, userID, "customer_updated", c)
	return c, nil
}

func (uc *SaveCustomer) Delete(ctx context.Context, studioID, userID, customerID uint) error {
	if err := uc.repo.Delete(ctx, studioID, customerID); err != nil {
		return err
	}
	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &userID,
		Action:   "customer_deleted",
		Entity:   "customer",
		EntityID: &customerID,
	})
	return nil
}

func (uc *SaveCustomer) ensureUniquePhone(ctx context.Context, studioID uint, phone string, exceptID uint) error {
	taken, err := uc.repo.PhoneTaken(ctx, studioID, phone, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return httperr.ErrBusiness("customer_exists")
	}
	return nil
}

func (uc *SaveCustomer) dispatch(studioID, userID uint, action string, c *models.Customer) {
	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &userID,
		Action:   action,
		Entity:   "customer",
		EntityID: &c.ID,
		Metadata: map[string]any{"status": c.Status},
	})
}
