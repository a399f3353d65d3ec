package contract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	"github.com/BruksfildServices01/studio-manager/internal/domain/accounting"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	"github.com/BruksfildServices01/studio-manager/internal/metrics"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

type RecordPaymentInput struct {
	StudioID   uint
	UserID     uint
	ContractID uint
	Amount     int64
	Date       *time.Time
	Note       string
}

type RecordContractPayment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewRecordContractPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *RecordContractPayment {
	return &RecordContractPayment{repo: repo, audit: audit, metrics: m}
}

// Execute raises the paid amount and books the matching income transaction
// in one step.
func (uc *RecordContractPayment) Execute(ctx context.Context, in RecordPaymentInput) (*models.Contract, *models.Transaction, error) {
	c, err := uc.repo.Get(ctx, in.StudioID, in.ContractID)
	if err != nil {
		return nil, nil, err
	}

	date := timezone.Now()
	if in.Date != nil {
		date = *in.Date
	}

	tx, err := record(ctx, uc.repo, c, in.Amount, date, in.Note, nil)
	if err != nil {
		return nil, nil, err
	}

	uc.metrics.Payment("manual")
	uc.audit.Dispatch(audit.Event{
		StudioID: in.StudioID,
		UserID:   &in.UserID,
		Action:   "contract_payment_recorded",
		Entity:   "contract",
		EntityID: &c.ID,
		Metadata: map[string]any{"amount": in.Amount, "paid": c.PaidAmount},
	})

	return c, tx, nil
}

func record(
	ctx context.Context,
	repo domain.Repository,
	c *models.Contract,
	amount int64,
	date time.Time,
	note string,
	externalRef *string,
) (*models.Transaction, error) {

	// validated on a copy so a refused payment leaves c untouched
	check := *c
	if err := domain.RegisterPayment(&check, amount); err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Thanh toán hợp đồng %s", c.Code)
	if note = strings.TrimSpace(note); note != "" {
		desc += ". " + note
	}

	contractID := c.ID
	tx := &models.Transaction{
		StudioID:    c.StudioID,
		Type:        string(accounting.TypeIncome),
		Amount:      amount,
		Category:    accounting.CategoryContractPayment,
		Status:      string(accounting.StatusCompleted),
		Date:        date,
		Description: desc,
		ContractID:  &contractID,
		ExternalRef: externalRef,
	}
	tx.SearchKey = accounting.SearchKey(tx)

	if err := repo.RecordPayment(ctx, c, tx); err != nil {
		return nil, err
	}
	return tx, nil
}
