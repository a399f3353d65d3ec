package accounting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/infra/repository"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/testutil"
)

type fixture struct {
	db     *gorm.DB
	repo   *repository.TransactionGormRepository
	studio *models.Studio
	uc     *ManageTransactions
}

func setup(t *testing.T) fixture {
	t.Helper()

	db := testutil.NewDB(t)
	repo := repository.NewTransactionGormRepository(db)
	return fixture{
		db:     db,
		repo:   repo,
		studio: testutil.SeedStudio(t, db),
		uc:     NewManageTransactions(repo, nil),
	}
}

func (f fixture) add(t *testing.T, in TransactionInput) *models.Transaction {
	t.Helper()

	tx, err := f.uc.Create(context.Background(), f.studio.ID, 1, in)
	require.NoError(t, err)
	return tx
}

func TestManageTransactions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tx := f.add(t, TransactionInput{Type: "expense", Amount: 3_000_000, Category: "rent", Date: "2026-03-01", Description: "Tiền thuê tháng 3"})
	assert.Equal(t, "completed", tx.Status)

	_, err := f.uc.Create(ctx, f.studio.ID, 1, TransactionInput{Type: "gift", Amount: 1, Category: "x"})
	assert.True(t, httperr.IsBusiness(err, "invalid_type"))

	_, err = f.uc.Create(ctx, f.studio.ID, 1, TransactionInput{Type: "income", Amount: 0, Category: "x"})
	assert.True(t, httperr.IsBusiness(err, "invalid_amount"))

	_, err = f.uc.Create(ctx, f.studio.ID, 1, TransactionInput{Type: "income", Amount: 1})
	assert.True(t, httperr.IsBusiness(err, "missing_category"))

	_, err = f.uc.Create(ctx, f.studio.ID, 1, TransactionInput{Type: "income", Amount: 1, Category: "contract_payment"})
	assert.True(t, httperr.IsBusiness(err, "reserved_category"))

	_, err = f.uc.Create(ctx, f.studio.ID, 1, TransactionInput{Type: "income", Amount: 1, Category: "x", Date: "01/03/2026"})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	got, err := f.uc.Update(ctx, f.studio.ID, 1, tx.ID, TransactionInput{Type: "expense", Amount: 3_500_000, Category: "rent", Date: "2026-03-01", Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(3_500_000), got.Amount)
	assert.Equal(t, "pending", got.Status)

	require.NoError(t, f.uc.Delete(ctx, f.studio.ID, 1, tx.ID))
	_, err = f.uc.Get(ctx, f.studio.ID, tx.ID)
	assert.True(t, httperr.IsBusiness(err, "transaction_not_found"))
}

func TestManageTransactions_LinkedToContract(t *testing.T) {
	f := setup(t)
	contractID := uint(9)
	linked := &models.Transaction{
		StudioID: f.studio.ID, Type: "income", Amount: 1_000_000, Category: "contract_payment",
		Status: "completed", Date: time.Now(), ContractID: &contractID,
	}
	require.NoError(t, f.repo.Create(context.Background(), linked))

	_, err := f.uc.Update(context.Background(), f.studio.ID, 1, linked.ID, TransactionInput{Type: "income", Amount: 5, Category: "other"})
	assert.True(t, httperr.IsBusiness(err, "linked_transaction"))
	assert.True(t, httperr.IsBusiness(f.uc.Delete(context.Background(), f.studio.ID, 1, linked.ID), "linked_transaction"))
}

func TestManageTransactions_ListFilters(t *testing.T) {
	f := setup(t)
	f.add(t, TransactionInput{Type: "expense", Amount: 1_000_000, Category: "equipment", Date: "2026-03-05", Description: "Mua đèn flash"})
	f.add(t, TransactionInput{Type: "income", Amount: 2_000_000, Category: "print", Date: "2026-03-31"})
	f.add(t, TransactionInput{Type: "income", Amount: 4_000_000, Category: "print", Date: "2026-04-01"})

	rows, err := f.uc.List(context.Background(), f.studio.ID, ListQuery{PeriodQuery: PeriodQuery{From: "2026-03-01", To: "2026-03-31"}})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = f.uc.List(context.Background(), f.studio.ID, ListQuery{Type: "income"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(4_000_000), rows[0].Amount)

	rows, err = f.uc.List(context.Background(), f.studio.ID, ListQuery{Query: "den flash"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = f.uc.List(context.Background(), f.studio.ID, ListQuery{PeriodQuery: PeriodQuery{From: "2026-04-02", To: "2026-04-01"}})
	assert.True(t, httperr.IsBusiness(err, "invalid_period"))
}

func TestReports(t *testing.T) {
	f := setup(t)
	f.add(t, TransactionInput{Type: "income", Amount: 10_000_000, Category: "print", Date: "2026-01-10"})
	f.add(t, TransactionInput{Type: "income", Amount: 5_000_000, Category: "print", Date: "2026-02-10"})
	f.add(t, TransactionInput{Type: "expense", Amount: 3_000_000, Category: "rent", Date: "2026-01-01"})
	f.add(t, TransactionInput{Type: "income", Amount: 2_000_000, Category: "print", Date: "2026-02-11", Status: "pending"})
	f.add(t, TransactionInput{Type: "expense", Amount: 9_000_000, Category: "rent", Date: "2025-12-31"})

	r := NewReports(f.repo)
	ctx := context.Background()

	s, err := r.Summary(ctx, f.studio.ID, PeriodQuery{From: "2026-01-01", To: "2026-12-31"})
	require.NoError(t, err)
	assert.Equal(t, int64(15_000_000), s.Income)
	assert.Equal(t, int64(3_000_000), s.Expense)
	assert.Equal(t, int64(12_000_000), s.Profit)
	assert.Equal(t, int64(2_000_000), s.PendingIncome)

	months, err := r.Monthly(ctx, f.studio.ID, 2026)
	require.NoError(t, err)
	require.Len(t, months, 12)
	assert.Equal(t, int64(7_000_000), months[0].Profit)
	assert.Equal(t, int64(5_000_000), months[1].Income)
	assert.Zero(t, months[11].Expense)

	cats, err := r.ByCategory(ctx, f.studio.ID, PeriodQuery{From: "2026-01-01"})
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "print", cats[0].Category)
	assert.Equal(t, int64(15_000_000), cats[0].Amount)

	_, err = r.Monthly(ctx, f.studio.ID, 1999)
	assert.True(t, httperr.IsBusiness(err, "invalid_period"))
}
