package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	"github.com/BruksfildServices01/studio-manager/internal/domain/customer"
	"github.com/BruksfildServices01/studio-manager/internal/domain/retouch"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/testutil"
)

func TestAppointmentRepository_CreateDetectsOverlap(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	studio := testutil.SeedStudio(t, db)
	staff := testutil.SeedStaff(t, db, studio.ID, "Hùng")
	repo := NewAppointmentGormRepository(db)

	start := time.Date(2026, 6, 1, 2, 0, 0, 0, time.UTC)
	first := &models.Appointment{
		StudioID: studio.ID, CoupleName: "An & Bình", StaffMemberID: &staff.ID,
		StartTime: start, EndTime: start.Add(time.Hour), Status: "pending",
	}
	require.NoError(t, repo.CreateAppointment(ctx, first))

	overlap := &models.Appointment{
		StudioID: studio.ID, CoupleName: "Cường & Dung", StaffMemberID: &staff.ID,
		StartTime: start.Add(-30 * time.Minute), EndTime: start.Add(30 * time.Minute), Status: "pending",
	}
	err := repo.CreateAppointment(ctx, overlap)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	adjacent := &models.Appointment{
		StudioID: studio.ID, CoupleName: "Cường & Dung", StaffMemberID: &staff.ID,
		StartTime: start.Add(time.Hour), EndTime: start.Add(2 * time.Hour), Status: "pending",
	}
	require.NoError(t, repo.CreateAppointment(ctx, adjacent))

	busy, err := repo.ListBusy(ctx, studio.ID, &staff.ID, start.Add(-time.Hour), start.Add(5*time.Hour))
	require.NoError(t, err)
	assert.Len(t, busy, 2)

	first.Status = "cancelled"
	require.NoError(t, repo.UpdateAppointment(ctx, first))
	require.NoError(t, repo.CreateAppointment(ctx, overlap))
}

func TestAppointmentRepository_GetScopedToStudio(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	studio := testutil.SeedStudio(t, db)
	other := testutil.SeedStudio(t, db)
	repo := NewAppointmentGormRepository(db)

	ap := &models.Appointment{StudioID: studio.ID, CoupleName: "X", StartTime: time.Now(), EndTime: time.Now().Add(time.Hour)}
	require.NoError(t, repo.CreateAppointment(ctx, ap))

	_, err := repo.GetAppointment(ctx, other.ID, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	got, err := repo.GetAppointment(ctx, studio.ID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", got.CoupleName)
}

func seedContract(t *testing.T, repo *ContractGormRepository, studioID uint, customer *models.Customer, pkg *models.CatalogItem) *models.Contract {
	t.Helper()

	c := &models.Contract{
		StudioID:     studioID,
		CustomerID:   customer.ID,
		Customer:     *customer,
		PackageID:    pkg.ID,
		Status:       string(contract.InitialStatus()),
		PackagePrice: pkg.Price,
		TotalAmount:  pkg.Price,
	}
	require.NoError(t, repo.Create(context.Background(), c, &models.ContractNote{ToStatus: c.Status, Content: "Tạo hợp đồng"}))
	return c
}

func TestContractRepository_CreateAndSearch(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	studio := testutil.SeedStudio(t, db)
	customer := testutil.SeedCustomer(t, db, studio.ID, "Nguyễn Thị Hồng", "0901234567")
	pkg := testutil.SeedCatalogItem(t, db, studio.ID, "package", "Gói Cơ Bản", 15_000_000)
	repo := NewContractGormRepository(db)

	c := seedContract(t, repo, studio.ID, customer, pkg)
	assert.True(t, strings.HasPrefix(c.Code, "HD"))
	assert.True(t, strings.HasSuffix(c.Code, "-0001"))

	found, err := repo.List(ctx, studio.ID, contract.ListFilter{Query: "hong"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Gói Cơ Bản", found[0].Package.Name)

	found, err = repo.List(ctx, studio.ID, contract.ListFilter{Query: strings.ToLower(c.Code)})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = repo.List(ctx, studio.ID, contract.ListFilter{Status: "completed"})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestContractRepository_CreateWritesHistoryAtomically(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	studio := testutil.SeedStudio(t, db)
	customer := testutil.SeedCustomer(t, db, studio.ID, "Bùi Nga", "0977777777")
	pkg := testutil.SeedCatalogItem(t, db, studio.ID, "package", "Gói", 10_000_000)
	repo := NewContractGormRepository(db)

	c := seedContract(t, repo, studio.ID, customer, pkg)
	got, err := repo.Get(ctx, studio.ID, c.ID)
	require.NoError(t, err)
	require.Len(t, got.NoteHistory, 1)
	assert.Equal(t, "Tạo hợp đồng", got.NoteHistory[0].Content)

	require.NoError(t, db.Migrator().DropTable(&models.ContractNote{}))

	failed := &models.Contract{
		StudioID: studio.ID, CustomerID: customer.ID, Customer: *customer,
		PackageID: pkg.ID, Status: string(contract.InitialStatus()),
		PackagePrice: pkg.Price, TotalAmount: pkg.Price,
	}
	require.Error(t, repo.Create(ctx, failed, &models.ContractNote{Content: "Tạo hợp đồng"}))

	var count int64
	require.NoError(t, db.Model(&models.Contract{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestContractRepository_TransitionToRetouchCreatesItemOnce(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	studio := testutil.SeedStudio(t, db)
	customer := testutil.SeedCustomer(t, db, studio.ID, "Lê Vy", "0911111111")
	pkg := testutil.SeedCatalogItem(t, db, studio.ID, "package", "Gói Cao Cấp", 30_000_000)
	repo := NewContractGormRepository(db)

	c := seedContract(t, repo, studio.ID, customer, pkg)
	now := time.Now()
	shoot := now.AddDate(0, 1, 0)

	for _, in := range []contract.TransitionInput{
		{To: contract.StatusScheduled, ShootDate: &shoot},
		{To: contract.StatusRetouch},
	} {
		note, err := contract.Apply(c, in, now)
		require.NoError(t, err)
		require.NoError(t, repo.Transition(ctx, c, note))
	}

	var items []models.RetouchItem
	require.NoError(t, db.Where("contract_id = ?", c.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, string(retouch.StatusAwaitingSelection), items[0].Status)
	assert.Equal(t, "Album Lê Vy", items[0].Title)

	note, err := contract.Apply(c, contract.TransitionInput{To: contract.StatusCancelled, Reason: "đổi ý"}, now)
	require.NoError(t, err)
	require.NoError(t, repo.Transition(ctx, c, note))

	got, err := repo.Get(ctx, studio.ID, c.ID)
	require.NoError(t, err)
	assert.Len(t, got.NoteHistory, 3)
	assert.Equal(t, "cancelled", got.NoteHistory[2].ToStatus)
}

func TestContractRepository_RecordPayment(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	studio := testutil.SeedStudio(t, db)
	customer := testutil.SeedCustomer(t, db, studio.ID, "Phạm Tú", "0922222222")
	pkg := testutil.SeedCatalogItem(t, db, studio.ID, "package", "Gói", 10_000_000)
	repo := NewContractGormRepository(db)
	c := seedContract(t, repo, studio.ID, customer, pkg)

	ref := "mp-123"
	pay := func(amount int64, ref *string) error {
		return repo.RecordPayment(ctx, c, &models.Transaction{
			StudioID: studio.ID, Type: "income", Amount: amount,
			Category: "contract_payment", Status: "completed",
			Date: time.Now(), ContractID: &c.ID, ExternalRef: ref,
		})
	}

	require.NoError(t, pay(4_000_000, &ref))
	assert.Equal(t, int64(4_000_000), c.PaidAmount)

	ok, err := repo.HasExternalPayment(ctx, ref)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.True(t, httperr.IsBusiness(pay(7_000_000, nil), "overpayment"))

	require.NoError(t, pay(6_000_000, nil))
	assert.Equal(t, int64(10_000_000), c.PaidAmount)

	var count int64
	db.Model(&models.Transaction{}).Where("contract_id = ?", c.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestContractRepository_Services(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	studio := testutil.SeedStudio(t, db)
	customer := testutil.SeedCustomer(t, db, studio.ID, "Vũ Hà", "0933333333")
	pkg := testutil.SeedCatalogItem(t, db, studio.ID, "package", "Gói", 10_000_000)
	repo := NewContractGormRepository(db)
	c := seedContract(t, repo, studio.ID, customer, pkg)

	line := &models.ContractService{ContractID: c.ID, ServiceID: 99, Name: "Flycam", UnitPrice: 2_000_000, Quantity: 1}
	c.TotalAmount = 12_000_000
	require.NoError(t, repo.AddService(ctx, c, line))

	got, err := repo.Get(ctx, studio.ID, c.ID)
	require.NoError(t, err)
	require.Len(t, got.AdditionalServices, 1)
	assert.Equal(t, int64(12_000_000), got.TotalAmount)

	err = repo.RemoveService(ctx, c, line.ID+100)
	assert.True(t, httperr.IsBusiness(err, "service_line_not_found"))

	c.TotalAmount = 10_000_000
	require.NoError(t, repo.RemoveService(ctx, c, line.ID))
	got, err = repo.Get(ctx, studio.ID, c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.AdditionalServices)
}

func TestContractRepository_StaleWritesKeepPayments(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	studio := testutil.SeedStudio(t, db)
	customer := testutil.SeedCustomer(t, db, studio.ID, "Đỗ Mai", "0944444444")
	pkg := testutil.SeedCatalogItem(t, db, studio.ID, "package", "Gói", 20_000_000)
	repo := NewContractGormRepository(db)
	seeded := seedContract(t, repo, studio.ID, customer, pkg)

	stale, err := repo.Get(ctx, studio.ID, seeded.ID)
	require.NoError(t, err)

	fresh, err := repo.Get(ctx, studio.ID, seeded.ID)
	require.NoError(t, err)
	require.NoError(t, repo.RecordPayment(ctx, fresh, &models.Transaction{
		StudioID: studio.ID, Type: "income", Amount: 4_000_000,
		Category: "contract_payment", Status: "completed",
		Date: time.Now(), ContractID: &fresh.ID,
	}))

	shoot := time.Now().AddDate(0, 1, 0)
	note, err := contract.Apply(stale, contract.TransitionInput{To: contract.StatusScheduled, ShootDate: &shoot}, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Transition(ctx, stale, note))
	assert.Equal(t, int64(4_000_000), stale.PaidAmount)

	stale.Location = "Đà Lạt"
	require.NoError(t, repo.Save(ctx, stale))

	line := &models.ContractService{ContractID: stale.ID, ServiceID: 7, Name: "Flycam", UnitPrice: 1_000_000, Quantity: 1}
	stale.TotalAmount = 21_000_000
	require.NoError(t, repo.AddService(ctx, stale, line))

	var sum int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("contract_id = ? AND category = ?", seeded.ID, "contract_payment").
		Select("COALESCE(SUM(amount), 0)").Scan(&sum).Error)

	got, err := repo.Get(ctx, studio.ID, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4_000_000), sum)
	assert.Equal(t, sum, got.PaidAmount)
	assert.Equal(t, "scheduled", got.Status)
	assert.Equal(t, "Đà Lạt", got.Location)
	assert.Equal(t, int64(21_000_000), got.TotalAmount)
}

func TestContractRepository_TotalBelowStoredPaid(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	studio := testutil.SeedStudio(t, db)
	customer := testutil.SeedCustomer(t, db, studio.ID, "Hà My", "0955555555")
	pkg := testutil.SeedCatalogItem(t, db, studio.ID, "package", "Gói", 10_000_000)
	repo := NewContractGormRepository(db)
	c := seedContract(t, repo, studio.ID, customer, pkg)

	stale, err := repo.Get(ctx, studio.ID, c.ID)
	require.NoError(t, err)

	require.NoError(t, repo.RecordPayment(ctx, c, &models.Transaction{
		StudioID: studio.ID, Type: "income", Amount: 9_000_000,
		Category: "contract_payment", Status: "completed",
		Date: time.Now(), ContractID: &c.ID,
	}))

	stale.Discount = 2_000_000
	stale.TotalAmount = 8_000_000
	err = repo.Save(ctx, stale)
	assert.True(t, httperr.IsBusiness(err, "total_below_paid"))

	got, err := repo.Get(ctx, studio.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10_000_000), got.TotalAmount)
	assert.Equal(t, int64(0), got.Discount)
}

func TestContractRepository_TransitionFromChangedStatus(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	studio := testutil.SeedStudio(t, db)
	customer := testutil.SeedCustomer(t, db, studio.ID, "Trần An", "0966666666")
	pkg := testutil.SeedCatalogItem(t, db, studio.ID, "package", "Gói", 10_000_000)
	repo := NewContractGormRepository(db)
	c := seedContract(t, repo, studio.ID, customer, pkg)

	stale, err := repo.Get(ctx, studio.ID, c.ID)
	require.NoError(t, err)

	note, err := contract.Apply(c, contract.TransitionInput{To: contract.StatusCancelled, Reason: "hoãn cưới"}, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Transition(ctx, c, note))

	shoot := time.Now().AddDate(0, 1, 0)
	note, err = contract.Apply(stale, contract.TransitionInput{To: contract.StatusScheduled, ShootDate: &shoot}, time.Now())
	require.NoError(t, err)
	err = repo.Transition(ctx, stale, note)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))

	got, err := repo.Get(ctx, studio.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.Len(t, got.NoteHistory, 2)
}

func TestRetouchRepository_ListOverdue(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	studio := testutil.SeedStudio(t, db)
	repo := NewRetouchGormRepository(db)

	now := time.Now().UTC()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	items := []*models.RetouchItem{
		{StudioID: studio.ID, ContractID: 1, Title: "late", Status: "in_progress", Deadline: &past},
		{StudioID: studio.ID, ContractID: 1, Title: "done", Status: "completed", Deadline: &past},
		{StudioID: studio.ID, ContractID: 2, Title: "ok", Status: "in_progress", Deadline: &future},
		{StudioID: studio.ID, ContractID: 2, Title: "open", Status: "awaiting_selection"},
	}
	for _, it := range items {
		require.NoError(t, repo.Create(ctx, it))
	}

	overdue, err := repo.List(ctx, studio.ID, retouch.ListFilter{OverdueAt: &now})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "late", overdue[0].Title)

	all, err := repo.List(ctx, studio.ID, retouch.ListFilter{ContractID: 2})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ok", all[0].Title, "items without deadline go last")
}

func TestCustomerRepository_NotesAndSummary(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	studio := testutil.SeedStudio(t, db)
	c := testutil.SeedCustomer(t, db, studio.ID, "Đỗ Lan", "0944444444")
	repo := NewCustomerGormRepository(db)

	require.NoError(t, repo.AddNote(ctx, &models.CustomerNote{CustomerID: c.ID, Content: "Hỏi giá gói cưới"}))
	require.NoError(t, repo.AddNote(ctx, &models.CustomerNote{CustomerID: c.ID, Content: "Hẹn xem studio"}))

	now := time.Now()
	c.NotesSummary = "Quan tâm gói cưới"
	c.SummaryUpdatedAt = &now
	require.NoError(t, repo.SaveSummary(ctx, c))

	got, err := repo.Get(ctx, studio.ID, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Notes, 2)
	assert.Equal(t, "Hỏi giá gói cưới", got.Notes[0].Content)
	assert.Equal(t, "Quan tâm gói cưới", got.NotesSummary)
	assert.NotNil(t, got.SummaryUpdatedAt)
}

func TestCustomerRepository_SearchPhoneAndWildcards(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	studio := testutil.SeedStudio(t, db)
	repo := NewCustomerGormRepository(db)

	for _, c := range []*models.Customer{
		{StudioID: studio.ID, Name: "Lý Hoa", Phone: "0901234567", Status: "interested"},
		{StudioID: studio.ID, Name: "Giảm 50% Mai", Phone: "0907654321", Status: "interested"},
		{StudioID: studio.ID, Name: "Ngô_Tú", Phone: "0911222333", Status: "interested"},
	} {
		require.NoError(t, repo.Create(ctx, c))
	}

	names := func(query string) []string {
		t.Helper()
		found, err := repo.List(ctx, studio.ID, customer.ListFilter{Query: query})
		require.NoError(t, err)
		out := make([]string, 0, len(found))
		for _, c := range found {
			out = append(out, c.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Lý Hoa"}, names("0901 234 567"))
	assert.Equal(t, []string{"Lý Hoa"}, names("0901-234-567"))
	assert.Equal(t, []string{"Giảm 50% Mai"}, names("%"))
	assert.Equal(t, []string{"Ngô_Tú"}, names("_"))
	assert.Empty(t, names("50%mai"))
}
