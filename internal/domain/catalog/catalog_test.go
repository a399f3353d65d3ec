package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

func TestComputeStats(t *testing.T) {
	items := []models.CatalogItem{
		{ID: 1, Kind: "package", Name: "Gói Cao Cấp"},
		{ID: 2, Kind: "service", Name: "Flycam"},
		{ID: 3, Kind: "service", Name: "Album thêm"},
	}
	contracts := []models.Contract{
		{
			PackageID:  1,
			Status:     "scheduled",
			PaidAmount: 12_000_000,
			AdditionalServices: []models.ContractService{
				{ServiceID: 2, UnitPrice: 2_000_000, Quantity: 1},
			},
		},
		{PackageID: 1, Status: "completed", PaidAmount: 20_000_000},
		{
			PackageID:  1,
			Status:     "cancelled",
			PaidAmount: 5_000_000,
			AdditionalServices: []models.ContractService{
				{ServiceID: 2, UnitPrice: 2_000_000, Quantity: 1},
			},
		},
	}

	out := ComputeStats(items, contracts)

	require.Len(t, out, 3)
	assert.Equal(t, Stats{Active: 1, Completed: 1, TotalRevenue: 30_000_000}, out[0].Stats)
	assert.Equal(t, Stats{Active: 1, TotalRevenue: 2_000_000}, out[1].Stats)
	assert.Equal(t, Stats{}, out[2].Stats)
	assert.Equal(t, "Flycam", out[1].Name)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindService, k)

	k, err = ParseKind("Package")
	require.NoError(t, err)
	assert.Equal(t, KindPackage, k)

	_, err = ParseKind("bundle")
	assert.True(t, httperr.IsBusiness(err, "invalid_kind"))
}
