package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/infra/cache"
	"github.com/BruksfildServices01/studio-manager/internal/infra/repository"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/testutil"
)

type fixture struct {
	db     *gorm.DB
	studio *models.Studio
	uc     *Catalog
}

func setup(t *testing.T) fixture {
	t.Helper()

	db := testutil.NewDB(t)
	return fixture{
		db:     db,
		studio: testutil.SeedStudio(t, db),
		uc: NewCatalog(repository.NewCatalogGormRepository(db), cache.NewMemory(time.Minute),
			time.Minute, nil, nil, logger.Discard()),
	}
}

func TestCatalog_CreateAndValidate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	item, err := f.uc.Create(ctx, f.studio.ID, 1, ItemInput{
		Kind: "package", Name: " Gói Cao Cấp ", Price: 30_000_000, Features: []string{"2 album", " ", "1 video"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Gói Cao Cấp", item.Name)
	assert.Equal(t, []string{"2 album", "1 video"}, item.Features)
	assert.True(t, item.Active)

	inactive := false
	hidden, err := f.uc.Create(ctx, f.studio.ID, 1, ItemInput{Name: "Flycam", Price: 2_000_000, Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "service", hidden.Kind)

	got, err := f.uc.Get(ctx, f.studio.ID, hidden.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	_, err = f.uc.Create(ctx, f.studio.ID, 1, ItemInput{Kind: "bundle", Name: "x"})
	assert.True(t, httperr.IsBusiness(err, "invalid_kind"))
	_, err = f.uc.Create(ctx, f.studio.ID, 1, ItemInput{Name: "x", Price: -1})
	assert.True(t, httperr.IsBusiness(err, "invalid_price"))
}

func TestCatalog_ListStatsAndCache(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	pkg, err := f.uc.Create(ctx, f.studio.ID, 1, ItemInput{Kind: "package", Name: "Gói Tiêu Chuẩn", Price: 15_000_000})
	require.NoError(t, err)
	album, err := f.uc.Create(ctx, f.studio.ID, 1, ItemInput{Name: "Album phụ", Price: 1_000_000})
	require.NoError(t, err)
	customer := testutil.SeedCustomer(t, f.db, f.studio.ID, "Ngô Mỹ", "0905555555")

	contracts := []models.Contract{
		{StudioID: f.studio.ID, CustomerID: customer.ID, PackageID: pkg.ID, Status: "completed", PaidAmount: 17_000_000},
		{StudioID: f.studio.ID, CustomerID: customer.ID, PackageID: pkg.ID, Status: "scheduled", PaidAmount: 5_000_000},
		{StudioID: f.studio.ID, CustomerID: customer.ID, PackageID: pkg.ID, Status: "cancelled", PaidAmount: 1_000_000},
	}
	for i := range contracts {
		require.NoError(t, f.db.Omit(clause.Associations).Create(&contracts[i]).Error)
	}
	require.NoError(t, f.db.Create(&models.ContractService{
		ContractID: contracts[0].ID, ServiceID: album.ID, Name: "Album phụ", UnitPrice: 1_000_000, Quantity: 2,
	}).Error)

	rows, err := f.uc.List(ctx, f.studio.ID, ListQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	stats := map[uint]models.CatalogItem{}
	for _, r := range rows {
		stats[r.ID] = r.CatalogItem
		switch r.ID {
		case pkg.ID:
			assert.Equal(t, 1, r.Stats.Active)
			assert.Equal(t, 1, r.Stats.Completed)
			assert.Equal(t, int64(20_000_000), r.Stats.TotalRevenue)
		case album.ID:
			assert.Equal(t, 1, r.Stats.Completed)
			assert.Equal(t, int64(2_000_000), r.Stats.TotalRevenue)
		}
	}
	assert.Len(t, stats, 2)

	// served from cache until a catalog write
	require.NoError(t, f.db.Model(&models.CatalogItem{}).Where("id = ?", album.ID).Update("name", "Đổi ngầm").Error)
	rows, err = f.uc.List(ctx, f.studio.ID, ListQuery{})
	require.NoError(t, err)
	for _, r := range rows {
		if r.ID == album.ID {
			assert.Equal(t, "Album phụ", r.Name)
		}
	}

	_, err = f.uc.Update(ctx, f.studio.ID, 1, pkg.ID, ItemInput{Kind: "package", Name: "Gói Tiêu Chuẩn", Price: 16_000_000})
	require.NoError(t, err)
	rows, err = f.uc.List(ctx, f.studio.ID, ListQuery{Kind: "service"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Đổi ngầm", rows[0].Name)

	err = f.uc.Delete(ctx, f.studio.ID, 1, album.ID)
	assert.True(t, httperr.IsBusiness(err, "catalog_item_in_use"))
}

func TestCatalog_Delete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	item, err := f.uc.Create(ctx, f.studio.ID, 1, ItemInput{Name: "Trang điểm", Price: 800_000})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(ctx, f.studio.ID, 1, item.ID))
	err = f.uc.Delete(ctx, f.studio.ID, 1, item.ID)
	assert.True(t, httperr.IsBusiness(err, "catalog_item_not_found"))
}
