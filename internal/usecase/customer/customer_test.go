package customer

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/customer"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/infra/repository"
	"github.com/BruksfildServices01/studio-manager/internal/infra/summarizer"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/testutil"
)

const hookURL = "https://hooks.example.com/summary"

type fixture struct {
	db     *gorm.DB
	repo   *repository.CustomerGormRepository
	studio *models.Studio
}

func setup(t *testing.T) fixture {
	t.Helper()

	db := testutil.NewDB(t)
	return fixture{
		db:     db,
		repo:   repository.NewCustomerGormRepository(db),
		studio: testutil.SeedStudio(t, db),
	}
}

func (f fixture) create(t *testing.T, name, phone string) *models.Customer {
	t.Helper()

	c, err := NewSaveCustomer(f.repo, nil).Create(context.Background(), f.studio.ID, 1, CustomerInput{
		Name: name, Phone: phone, Email: "", Status: "hot",
	})
	require.NoError(t, err)
	return c
}

func TestSaveCustomer_Create(t *testing.T) {
	f := setup(t)
	uc := NewSaveCustomer(f.repo, nil)
	ctx := context.Background()

	c, err := uc.Create(ctx, f.studio.ID, 1, CustomerInput{
		Name: " Phạm Quỳnh ", Phone: "0903 111 222", Email: "Quynh@Mail.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Phạm Quỳnh", c.Name)
	assert.Equal(t, "0903111222", c.Phone)
	assert.Equal(t, "quynh@mail.com", c.Email)
	assert.Equal(t, "interested", c.Status)

	_, err = uc.Create(ctx, f.studio.ID, 1, CustomerInput{Name: "Khác", Phone: "0903-111-222"})
	assert.True(t, httperr.IsBusiness(err, "customer_exists"))

	_, err = uc.Create(ctx, f.studio.ID, 1, CustomerInput{Phone: "0903111222"})
	assert.True(t, httperr.IsBusiness(err, "missing_name"))

	_, err = uc.Create(ctx, f.studio.ID, 1, CustomerInput{Name: "A"})
	assert.True(t, httperr.IsBusiness(err, "missing_phone"))

	_, err = uc.Create(ctx, f.studio.ID, 1, CustomerInput{Name: "A", Phone: "12"})
	assert.True(t, httperr.IsBusiness(err, "invalid_phone"))

	_, err = uc.Create(ctx, f.studio.ID, 1, CustomerInput{Name: "A", Phone: "0903111333", Status: "cold"})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	other := testutil.SeedStudio(t, f.db)
	_, err = uc.Create(ctx, other.ID, 1, CustomerInput{Name: "Khác", Phone: "0903111222"})
	assert.NoError(t, err)
}

func TestSaveCustomer_UpdateAndDelete(t *testing.T) {
	f := setup(t)
	uc := NewSaveCustomer(f.repo, nil)
	ctx := context.Background()

	a := f.create(t, "Lê An", "0901000001")
	f.create(t, "Lê Bình", "0901000002")

	_, err := uc.Update(ctx, f.studio.ID, 1, a.ID, CustomerInput{Name: "Lê An", Phone: "0901000002"})
	assert.True(t, httperr.IsBusiness(err, "customer_exists"))

	got, err := uc.Update(ctx, f.studio.ID, 1, a.ID, CustomerInput{Name: "Lê Thị An", Phone: "0901000001", Status: "potential"})
	require.NoError(t, err)
	assert.Equal(t, "potential", got.Status)

	rows, err := NewListCustomers(f.repo).Execute(ctx, f.studio.ID, domain.ListFilter{Query: "le thi"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, a.ID, rows[0].ID)

	rows, err = NewListCustomers(f.repo).Execute(ctx, f.studio.ID, domain.ListFilter{Status: "HOT"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	pkg := testutil.SeedCatalogItem(t, f.db, f.studio.ID, "package", "Gói", 1)
	require.NoError(t, f.db.Omit(clause.Associations).Create(&models.Contract{
		StudioID: f.studio.ID, CustomerID: a.ID, PackageID: pkg.ID, Status: "waiting_schedule",
	}).Error)

	err = uc.Delete(ctx, f.studio.ID, 1, a.ID)
	assert.True(t, httperr.IsBusiness(err, "customer_has_contracts"))

	b := rows[0]
	require.NoError(t, uc.Delete(ctx, f.studio.ID, 1, b.ID))

	err = uc.Delete(ctx, f.studio.ID, 1, b.ID)
	assert.True(t, httperr.IsBusiness(err, "customer_not_found"))
}

func TestAddCustomerNote_NewestFirst(t *testing.T) {
	f := setup(t)
	c := f.create(t, "Hồ Mai", "0907000000")
	uc := NewAddCustomerNote(f.repo)
	ctx := context.Background()

	_, err := uc.Execute(ctx, f.studio.ID, c.ID, "Lan", "   ")
	assert.True(t, httperr.IsBusiness(err, "missing_content"))

	_, err = uc.Execute(ctx, f.studio.ID, c.ID, "Lan", "Gọi lần 1")
	require.NoError(t, err)
	_, err = uc.Execute(ctx, f.studio.ID, c.ID, "Lan", "Gọi lần 2")
	require.NoError(t, err)

	got, err := NewGetCustomer(f.repo).Execute(ctx, f.studio.ID, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Notes, 2)
	assert.Equal(t, "Gọi lần 2", got.Notes[0].Content)
}

func TestSummarizeNotes(t *testing.T) {
	f := setup(t)
	c := f.create(t, "Hồng", "0908000000")
	ctx := context.Background()

	_, err := NewSummarizeNotes(f.repo, nil, nil, nil, nil).Execute(ctx, f.studio.ID, 1, c.ID)
	assert.True(t, httperr.IsBusiness(err, "summary_disabled"))

	hook := summarizer.NewWebhook(hookURL, time.Second, logger.Discard())
	httpmock.ActivateNonDefault(hook.Client())
	t.Cleanup(httpmock.DeactivateAndReset)

	uc := NewSummarizeNotes(f.repo, hook, nil, nil, logger.Discard())

	_, err = uc.Execute(ctx, f.studio.ID, 1, c.ID)
	assert.True(t, httperr.IsBusiness(err, "no_notes"))
	assert.Zero(t, httpmock.GetTotalCallCount())

	_, err = NewAddCustomerNote(f.repo).Execute(ctx, f.studio.ID, c.ID, "Lan", "Thích phong cách Hàn Quốc")
	require.NoError(t, err)

	httpmock.RegisterResponder(http.MethodPost, hookURL,
		httpmock.NewStringResponder(http.StatusOK, `{"data":{"summary":"Khách thích phong cách Hàn"}}`))

	got, err := uc.Execute(ctx, f.studio.ID, 1, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Khách thích phong cách Hàn", got.NotesSummary)
	assert.NotNil(t, got.SummaryUpdatedAt)

	httpmock.RegisterResponder(http.MethodPost, hookURL,
		httpmock.NewStringResponder(http.StatusBadGateway, "down"))

	_, err = uc.Execute(ctx, f.studio.ID, 1, c.ID)
	assert.True(t, httperr.IsBusiness(err, "summary_unavailable"))

	stored, err := f.repo.Get(ctx, f.studio.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Khách thích phong cách Hàn", stored.NotesSummary)
}
