package contract

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/infra/payments"
	"github.com/BruksfildServices01/studio-manager/internal/infra/repository"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/testutil"
)

type fixture struct {
	db       *gorm.DB
	repo     *repository.ContractGormRepository
	studio   *models.Studio
	customer *models.Customer
	pkg      *models.CatalogItem
	album    *models.CatalogItem
}

func setup(t *testing.T) fixture {
	t.Helper()

	db := testutil.NewDB(t)
	studio := testutil.SeedStudio(t, db)

	return fixture{
		db:       db,
		repo:     repository.NewContractGormRepository(db),
		studio:   studio,
		customer: testutil.SeedCustomer(t, db, studio.ID, "Nguyễn Minh Anh", "0901234567"),
		pkg:      testutil.SeedCatalogItem(t, db, studio.ID, "package", "Gói Premium", 20_000_000),
		album:    testutil.SeedCatalogItem(t, db, studio.ID, "service", "Album phụ", 1_500_000),
	}
}

func (f fixture) create(t *testing.T, discount int64, services ...ServiceLine) *models.Contract {
	t.Helper()

	c, err := NewCreateContract(f.repo, nil).Execute(context.Background(), CreateContractInput{
		StudioID:   f.studio.ID,
		UserID:     1,
		Author:     "Lan",
		CustomerID: f.customer.ID,
		PackageID:  f.pkg.ID,
		Location:   " Đà Lạt ",
		Discount:   discount,
		Services:   services,
	})
	require.NoError(t, err)
	return c
}

type fakeGateway struct {
	links    []payments.LinkInput
	payments map[string]*payments.Payment
}

func (g *fakeGateway) CreateLink(_ context.Context, in payments.LinkInput) (*payments.Link, error) {
	g.links = append(g.links, in)
	return &payments.Link{ID: "pref-1", URL: "https://pay.example.com/pref-1"}, nil
}

func (g *fakeGateway) GetPayment(_ context.Context, id string) (*payments.Payment, error) {
	p, ok := g.payments[id]
	if !ok {
		return nil, httperr.ErrBusiness("payment_provider_error")
	}
	return p, nil
}

// ======================================================
// CREATE / QUERY
// ======================================================

func TestCreateContract(t *testing.T) {
	f := setup(t)

	c := f.create(t, 500_000, ServiceLine{ServiceID: f.album.ID, Quantity: 2})

	assert.Equal(t, "waiting_schedule", c.Status)
	assert.Equal(t, "Đà Lạt", c.Location)
	assert.Equal(t, int64(22_500_000), c.TotalAmount)
	assert.NotEmpty(t, c.Code)

	v, err := NewGetContract(f.repo).Execute(context.Background(), f.studio.ID, c.ID)
	require.NoError(t, err)
	require.Len(t, v.AdditionalServices, 1)
	assert.Equal(t, "Album phụ", v.AdditionalServices[0].Name)
	require.Len(t, v.NoteHistory, 1)
	assert.Equal(t, "Tạo hợp đồng", v.NoteHistory[0].Content)
	assert.Equal(t, int64(22_500_000), v.Outstanding)
	require.Len(t, v.Next, 2)
	assert.Equal(t, "scheduled", v.Next[0].Status)
	assert.Equal(t, []string{"shoot_date"}, v.Next[0].Required)
}

func TestCreateContract_Validation(t *testing.T) {
	f := setup(t)
	uc := NewCreateContract(f.repo, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateContractInput{StudioID: f.studio.ID, PackageID: f.pkg.ID})
	assert.True(t, httperr.IsBusiness(err, "missing_customer"))

	_, err = uc.Execute(ctx, CreateContractInput{StudioID: f.studio.ID, CustomerID: f.customer.ID})
	assert.True(t, httperr.IsBusiness(err, "missing_package"))

	_, err = uc.Execute(ctx, CreateContractInput{StudioID: f.studio.ID, CustomerID: f.customer.ID, PackageID: f.album.ID})
	assert.True(t, httperr.IsBusiness(err, "invalid_package"))

	_, err = uc.Execute(ctx, CreateContractInput{
		StudioID: f.studio.ID, CustomerID: f.customer.ID, PackageID: f.pkg.ID,
		Services: []ServiceLine{{ServiceID: f.pkg.ID}},
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_service"))

	_, err = uc.Execute(ctx, CreateContractInput{
		StudioID: f.studio.ID, CustomerID: f.customer.ID, PackageID: f.pkg.ID,
		Discount: 25_000_000,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_discount"))

	var count int64
	f.db.Model(&models.Contract{}).Count(&count)
	assert.Zero(t, count)
}

func TestListContracts(t *testing.T) {
	f := setup(t)
	f.create(t, 0)

	uc := NewListContracts(f.repo)

	rows, err := uc.Execute(context.Background(), f.studio.ID, domain.ListFilter{Query: "minh anh"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = uc.Execute(context.Background(), f.studio.ID, domain.ListFilter{Status: "completed"})
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = uc.Execute(context.Background(), f.studio.ID, domain.ListFilter{Status: "shipped"})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

// ======================================================
// STATUS
// ======================================================

func TestChangeContractStatus(t *testing.T) {
	f := setup(t)
	c := f.create(t, 0)
	uc := NewChangeContractStatus(f.repo, nil, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, f.studio.ID, 1, c.ID, domain.TransitionInput{To: domain.StatusScheduled})
	assert.True(t, httperr.IsBusiness(err, "missing_shoot_date"))

	shoot := time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)
	got, err := uc.Execute(ctx, f.studio.ID, 1, c.ID, domain.TransitionInput{
		To: domain.StatusScheduled, ShootDate: &shoot, Author: "Lan",
	})
	require.NoError(t, err)
	assert.Equal(t, "scheduled", got.Status)

	_, err = uc.Execute(ctx, f.studio.ID, 1, c.ID, domain.TransitionInput{To: domain.StatusRetouch})
	require.NoError(t, err)

	var item models.RetouchItem
	require.NoError(t, f.db.Where("contract_id = ?", c.ID).First(&item).Error)
	assert.Equal(t, "Album Nguyễn Minh Anh", item.Title)

	stored, err := f.repo.Get(ctx, f.studio.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "retouch", stored.Status)
	assert.Len(t, stored.NoteHistory, 3)

	_, err = uc.Execute(ctx, f.studio.ID, 1, c.ID, domain.TransitionInput{To: domain.StatusCompleted})
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}

func TestUpdateContract_ClosedRefused(t *testing.T) {
	f := setup(t)
	c := f.create(t, 0)
	ctx := context.Background()

	_, err := NewChangeContractStatus(f.repo, nil, nil).Execute(ctx, f.studio.ID, 1, c.ID,
		domain.TransitionInput{To: domain.StatusCancelled, Reason: "Đổi ngày cưới"})
	require.NoError(t, err)

	loc := "Hội An"
	_, err = NewUpdateContract(f.repo, nil).Execute(ctx, UpdateContractInput{
		StudioID: f.studio.ID, ContractID: c.ID, Location: &loc,
	})
	assert.True(t, httperr.IsBusiness(err, "contract_closed"))

	_, err = NewManageContractServices(f.repo, nil).Add(ctx, f.studio.ID, 1, c.ID, ServiceLine{ServiceID: f.album.ID})
	assert.True(t, httperr.IsBusiness(err, "contract_closed"))
}

func TestUpdateContract(t *testing.T) {
	f := setup(t)
	c := f.create(t, 0)

	loc := "Hội An"
	discount := int64(2_000_000)
	got, err := NewUpdateContract(f.repo, nil).Execute(context.Background(), UpdateContractInput{
		StudioID: f.studio.ID, ContractID: c.ID, Location: &loc, Discount: &discount,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(18_000_000), got.TotalAmount)

	rows, err := f.repo.List(context.Background(), f.studio.ID, domain.ListFilter{Query: "hoi an"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

// ======================================================
// NOTES / SERVICES
// ======================================================

func TestAddContractNote(t *testing.T) {
	f := setup(t)
	c := f.create(t, 0)
	uc := NewAddContractNote(f.repo)

	_, err := uc.Execute(context.Background(), f.studio.ID, c.ID, "Lan", "  ")
	assert.True(t, httperr.IsBusiness(err, "missing_content"))

	note, err := uc.Execute(context.Background(), f.studio.ID, c.ID, "Lan", "Khách muốn thêm ảnh gia đình")
	require.NoError(t, err)
	assert.NotZero(t, note.ID)

	_, err = uc.Execute(context.Background(), f.studio.ID+1, c.ID, "Lan", "x")
	assert.True(t, httperr.IsBusiness(err, "contract_not_found"))
}

func TestManageContractServices(t *testing.T) {
	f := setup(t)
	c := f.create(t, 0)
	uc := NewManageContractServices(f.repo, nil)
	ctx := context.Background()

	got, err := uc.Add(ctx, f.studio.ID, 1, c.ID, ServiceLine{ServiceID: f.album.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(24_500_000), got.TotalAmount)
	require.Len(t, got.AdditionalServices, 1)
	lineID := got.AdditionalServices[0].ID
	assert.NotZero(t, lineID)

	got, err = uc.Remove(ctx, f.studio.ID, 1, c.ID, lineID)
	require.NoError(t, err)
	assert.Equal(t, int64(20_000_000), got.TotalAmount)
	assert.Empty(t, got.AdditionalServices)

	_, err = uc.Remove(ctx, f.studio.ID, 1, c.ID, lineID)
	assert.True(t, httperr.IsBusiness(err, "service_line_not_found"))
}

// ======================================================
// PAYMENTS
// ======================================================

func TestRecordContractPayment(t *testing.T) {
	f := setup(t)
	c := f.create(t, 0)
	uc := NewRecordContractPayment(f.repo, nil, nil)
	ctx := context.Background()

	got, tx, err := uc.Execute(ctx, RecordPaymentInput{StudioID: f.studio.ID, ContractID: c.ID, Amount: 5_000_000, Note: "Đặt cọc"})
	require.NoError(t, err)
	assert.Equal(t, int64(5_000_000), got.PaidAmount)
	assert.Equal(t, "income", tx.Type)
	assert.Equal(t, "contract_payment", tx.Category)
	assert.Contains(t, tx.Description, c.Code)

	_, _, err = uc.Execute(ctx, RecordPaymentInput{StudioID: f.studio.ID, ContractID: c.ID, Amount: 15_000_001})
	assert.True(t, httperr.IsBusiness(err, "overpayment"))

	_, _, err = uc.Execute(ctx, RecordPaymentInput{StudioID: f.studio.ID, ContractID: c.ID, Amount: 0})
	assert.True(t, httperr.IsBusiness(err, "invalid_amount"))

	var count int64
	f.db.Model(&models.Transaction{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// total can no longer drop below what was paid
	discount := int64(16_000_000)
	_, err = NewUpdateContract(f.repo, nil).Execute(ctx, UpdateContractInput{
		StudioID: f.studio.ID, ContractID: c.ID, Discount: &discount,
	})
	assert.True(t, httperr.IsBusiness(err, "total_below_paid"))
}

func TestCreatePaymentLink(t *testing.T) {
	f := setup(t)
	c := f.create(t, 0)
	ctx := context.Background()

	_, err := NewCreatePaymentLink(f.repo, nil, "", nil).Execute(ctx, f.studio.ID, 1, c.ID, 0)
	assert.True(t, httperr.IsBusiness(err, "payments_disabled"))

	gw := &fakeGateway{}
	uc := NewCreatePaymentLink(f.repo, gw, "https://studio.example.com/api/payments/webhook", nil)

	link, err := uc.Execute(ctx, f.studio.ID, 1, c.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/pref-1", link.URL)
	require.Len(t, gw.links, 1)
	assert.Equal(t, int64(20_000_000), gw.links[0].Amount)
	assert.Equal(t, payments.ContractReference(f.studio.ID, c.ID), gw.links[0].Reference)

	_, err = uc.Execute(ctx, f.studio.ID, 1, c.ID, 30_000_000)
	assert.True(t, httperr.IsBusiness(err, "overpayment"))

	_, _, err = NewRecordContractPayment(f.repo, nil, nil).Execute(ctx, RecordPaymentInput{
		StudioID: f.studio.ID, ContractID: c.ID, Amount: 20_000_000,
	})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, f.studio.ID, 1, c.ID, 0)
	assert.True(t, httperr.IsBusiness(err, "already_paid"))
}

func TestHandlePaymentNotification(t *testing.T) {
	f := setup(t)
	c := f.create(t, 0)
	ctx := context.Background()

	gw := &fakeGateway{payments: map[string]*payments.Payment{
		"101": {ID: "101", Status: "approved", Reference: payments.ContractReference(f.studio.ID, c.ID), Amount: 8_000_000},
		"102": {ID: "102", Status: "pending", Reference: payments.ContractReference(f.studio.ID, c.ID), Amount: 1_000},
		"103": {ID: "103", Status: "approved", Reference: "order:9", Amount: 1_000},
		"104": {ID: "104", Status: "approved", Reference: payments.ContractReference(f.studio.ID, c.ID), Amount: 50_000_000},
	}}
	uc := NewHandlePaymentNotification(f.repo, gw, nil, nil, logger.Discard())

	res, err := uc.Execute(ctx, "101")
	require.NoError(t, err)
	assert.True(t, res.Recorded)

	res, err = uc.Execute(ctx, "101")
	require.NoError(t, err)
	assert.False(t, res.Recorded)
	assert.Equal(t, "already_recorded", res.Reason)

	res, err = uc.Execute(ctx, "102")
	require.NoError(t, err)
	assert.Equal(t, "status_pending", res.Reason)

	res, err = uc.Execute(ctx, "103")
	require.NoError(t, err)
	assert.Equal(t, "unknown_reference", res.Reason)

	res, err = uc.Execute(ctx, "104")
	require.NoError(t, err)
	assert.Equal(t, "overpayment", res.Reason)

	stored, err := f.repo.Get(ctx, f.studio.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8_000_000), stored.PaidAmount)

	var tx models.Transaction
	require.NoError(t, f.db.Where("contract_id = ?", c.ID).First(&tx).Error)
	require.NotNil(t, tx.ExternalRef)
	assert.Equal(t, "mp:101", *tx.ExternalRef)
}
