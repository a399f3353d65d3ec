package accounting

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/accounting"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

type TransactionInput struct {
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type ListQuery struct {
	PeriodQuery
	Type     string
	Category string
	Status   string
	Query    string
}

type ManageTransactions struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewManageTransactions(repo domain.Repository, audit *audit.Dispatcher) *ManageTransactions {
	return &ManageTransactions{repo: repo, audit: audit}
}

func (uc *ManageTransactions) List(ctx context.Context, studioID uint, q ListQuery) ([]models.Transaction, error) {
	loc, err := studioLocation(ctx, uc.repo, studioID)
	if err != nil {
		return nil, err
	}
	from, to, err := q.bounds(loc)
	if err != nil {
		return nil, err
	}

	f := domain.ListFilter{
		Category: strings.TrimSpace(q.Category),
		Query:    q.Query,
		From:     from,
		To:       to,
	}
	if q.Type != "" {
		t, err := domain.ParseType(q.Type)
		if err != nil {
			return nil, err
		}
		f.Type = string(t)
	}
	if q.Status != "" {
		s, err := domain.ParseStatus(q.Status)
		if err != nil {
			return nil, err
		}
		f.Status = string(s)
	}

	return uc.repo.List(ctx, studioID, f)
}

func (uc *ManageTransactions) Get(ctx context.Context, studioID, txID uint) (*models.Transaction, error) {
	return uc.repo.Get(ctx, studioID, txID)
}

func (uc *ManageTransactions) Create(ctx context.Context, studioID, userID uint, in TransactionInput) (*models.Transaction, error) {
	t := &models.Transaction{StudioID: studioID}
	if err := uc.apply(ctx, studioID, t, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	uc.dispatch(studioID, userID, "transaction_created", t)
	return t, nil
}

// Update refuses payments booked from a contract; those follow the
// contract's paid amount.
func (uc *ManageTransactions) Update(ctx context.Context, studioID, userID, txID uint, in TransactionInput) (*models.Transaction, error) {
	t, err := uc.repo.Get(ctx, studioID, txID)
	if err != nil {
		return nil, err
	}
	if t.ContractID != nil {
		return nil, httperr.ErrBusiness("linked_transaction")
	}
	if err := uc.apply(ctx, studioID, t, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	uc.dispatch(studioID, userID, "transaction_updated", t)
	return t, nil
}

func (uc *ManageTransactions) Delete(ctx context.Context, studioID, userID, txID uint) error {
	t, err := uc.repo.Get(ctx, studioID, txID)
	if err != nil {
		return err
	}
	if t.ContractID != nil {
		return httperr.ErrBusiness("linked_transaction")
	}
	if err := uc.repo.Delete(ctx, studioID, txID); err != nil {
		return err
	}
	uc.dispatch(studioID, userID, "transaction_deleted", t)
	return nil
}

func (uc *ManageTransactions) apply(ctx context.Context, studioID uint, t *models.Transaction, in TransactionInput) error {
	typ, err := domain.ParseType(in.Type)
	if err != nil {
		return err
	}
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return err
	}
	if in.Amount <= 0 {
		return httperr.ErrBusiness("invalid_amount")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return httperr.ErrBusiness("missing_category")
	}
	if category == domain.CategoryContractPayment {
		return httperr.ErrBusiness("reserved_category")
	}

	studio, err := uc.repo.GetStudioByID(ctx, studioID)
	if err != nil {
		return err
	}
	loc := timezone.Location(studio.Timezone)

	date, err := parseDay(in.Date, loc)
	if err != nil {
		return err
	}
	if date == nil {
		now := timezone.NowIn(studio.Timezone)
		date = &now
	}

	t.Type = string(typ)
	t.Status = string(status)
	t.Amount = in.Amount
	t.Category = category
	t.Date = *date
	t.Description = strings.TrimSpace(in.Description)
	return nil
}

func (uc *ManageTransactions) dispatch(studioID, userID uint, action string, t *models.Transaction) {
	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &userID,
		Action:   action,
		Entity:   "transaction",
		EntityID: &t.ID,
		Metadata: map[string]any{"type": t.Type, "amount": t.Amount, "category": t.Category},
	})
}
