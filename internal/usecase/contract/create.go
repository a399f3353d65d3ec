package contract

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	"github.com/BruksfildServices01/studio-manager/internal/domain/catalog"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type ServiceLine struct {
	ServiceID uint `json:"service_id"`
	Quantity  int  `json:"quantity"`
}

type CreateContractInput struct {
	StudioID uint
	UserID   uint
	Author   string

	CustomerID  uint
	PackageID   uint
	WeddingDate *time.Time
	Location    string
	Discount    int64
	Services    []ServiceLine
	Note        string
}

// ======================================================
// USE CASE
// ======================================================

type CreateContract struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateContract(repo domain.Repository, audit *audit.Dispatcher) *CreateContract {
	return &CreateContract{repo: repo, audit: audit}
}

func (uc *CreateContract) Execute(ctx context.Context, in CreateContractInput) (*models.Contract, error) {
	if in.CustomerID == 0 {
		return nil, httperr.ErrBusiness("missing_customer")
	}
	if in.PackageID == 0 {
		return nil, httperr.ErrBusiness("missing_package")
	}

	customer, err := uc.repo.GetCustomer(ctx, in.StudioID, in.CustomerID)
	if err != nil {
		return nil, err
	}

	pkg, err := uc.repo.GetCatalogItem(ctx, in.StudioID, in.PackageID)
	if err != nil {
		return nil, err
	}
	if catalog.Kind(pkg.Kind) != catalog.KindPackage || !pkg.Active {
		return nil, httperr.ErrBusiness("invalid_package")
	}

	c := &models.Contract{
		StudioID:     in.StudioID,
		CustomerID:   customer.ID,
		Customer:     *customer,
		PackageID:    pkg.ID,
		Status:       string(domain.InitialStatus()),
		WeddingDate:  in.WeddingDate,
		Location:     strings.TrimSpace(in.Location),
		PackagePrice: pkg.Price,
		Discount:     in.Discount,
	}

	for _, l := range in.Services {
		line, err := buildServiceLine(ctx, uc.repo, in.StudioID, l)
		if err != nil {
			return nil, err
		}
		c.AdditionalServices = append(c.AdditionalServices, *line)
	}

	if err := domain.Recalculate(c); err != nil {
		return nil, err
	}

	content := "Tạo hợp đồng"
	if note := strings.TrimSpace(in.Note); note != "" {
		content += ". " + note
	}
	first := &models.ContractNote{
		Author:   in.Author,
		ToStatus: c.Status,
		Content:  content,
	}

	if err := uc.repo.Create(ctx, c, first); err != nil {
		return nil, err
	}
	c.NoteHistory = []models.ContractNote{*first}

	c.Package = *pkg

	uc.audit.Dispatch(audit.Event{
		StudioID: in.StudioID,
		UserID:   &in.UserID,
		Action:   "contract_created",
		Entity:   "contract",
		EntityID: &c.ID,
		Metadata: map[string]any{"code": c.Code, "total": c.TotalAmount},
	})

	return c, nil
}

// buildServiceLine snapshots name and price of an active service item.
func buildServiceLine(ctx context.Context, repo domain.Repository, studioID uint, l ServiceLine) (*models.ContractService, error) {
	item, err := repo.GetCatalogItem(ctx, studioID, l.ServiceID)
	if err != nil {
		return nil, err
	}
	if catalog.Kind(item.Kind) != catalog.KindService || !item.Active {
		return nil, httperr.ErrBusiness("invalid_service")
	}

	qty := l.Quantity
	if qty <= 0 {
		qty = 1
	}

	return &models.ContractService{
		ServiceID: item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  qty,
	}, nil
}
