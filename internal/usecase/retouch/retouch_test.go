package retouch

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/retouch"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/infra/repository"
	"github.com/BruksfildServices01/studio-manager/internal/infra/storage"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/testutil"
)

type fixture struct {
	db       *gorm.DB
	repo     *repository.RetouchGormRepository
	studio   *models.Studio
	contract *models.Contract
	staff    *models.StaffMember
}

func setup(t *testing.T) fixture {
	t.Helper()

	db := testutil.NewDB(t)
	studio := testutil.SeedStudio(t, db)
	customer := testutil.SeedCustomer(t, db, studio.ID, "Trần Bảo Ngọc", "0912345678")
	pkg := testutil.SeedCatalogItem(t, db, studio.ID, "package", "Gói Basic", 10_000_000)

	c := &models.Contract{
		StudioID:     studio.ID,
		Code:         "HD2026-0001",
		CustomerID:   customer.ID,
		PackageID:    pkg.ID,
		Status:       "retouch",
		PackagePrice: pkg.Price,
		TotalAmount:  pkg.Price,
	}
	require.NoError(t, db.Omit(clause.Associations).Create(c).Error)

	return fixture{
		db:       db,
		repo:     repository.NewRetouchGormRepository(db),
		studio:   studio,
		contract: c,
		staff:    testutil.SeedStaff(t, db, studio.ID, "Hà Editor"),
	}
}

func (f fixture) create(t *testing.T, deadline *time.Time) *models.RetouchItem {
	t.Helper()

	item, err := NewCreateRetouchItem(f.repo, nil).Execute(context.Background(), CreateRetouchInput{
		StudioID:   f.studio.ID,
		ContractID: f.contract.ID,
		AssigneeID: &f.staff.ID,
		Deadline:   deadline,
	})
	require.NoError(t, err)
	return item
}

func TestCreateRetouchItem(t *testing.T) {
	f := setup(t)

	item := f.create(t, nil)
	assert.Equal(t, "Album Trần Bảo Ngọc", item.Title)
	assert.Equal(t, "awaiting_selection", item.Status)
	require.NotNil(t, item.AssigneeID)

	_, err := NewCreateRetouchItem(f.repo, nil).Execute(context.Background(), CreateRetouchInput{
		StudioID: f.studio.ID, ContractID: f.contract.ID + 50,
	})
	assert.True(t, httperr.IsBusiness(err, "contract_not_found"))

	f.db.Model(f.staff).Update("status", "inactive")
	_, err = NewCreateRetouchItem(f.repo, nil).Execute(context.Background(), CreateRetouchInput{
		StudioID: f.studio.ID, ContractID: f.contract.ID, AssigneeID: &f.staff.ID,
	})
	assert.True(t, httperr.IsBusiness(err, "staff_inactive"))
}

func TestUpdateRetouchItem(t *testing.T) {
	f := setup(t)
	item := f.create(t, nil)
	uc := NewUpdateRetouchItem(f.repo, nil)

	title := "Album ngoại cảnh"
	deadline := time.Now().Add(72 * time.Hour)
	none := uint(0)

	got, err := uc.Execute(context.Background(), UpdateRetouchInput{
		StudioID: f.studio.ID, ItemID: item.ID,
		Title: &title, Deadline: &deadline, AssigneeID: &none,
	})
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Nil(t, got.AssigneeID)

	stored, err := f.repo.Get(context.Background(), f.studio.ID, item.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.AssigneeID)
	require.NotNil(t, stored.Deadline)
	assert.WithinDuration(t, deadline, *stored.Deadline, time.Second)

	blank := " "
	_, err = uc.Execute(context.Background(), UpdateRetouchInput{StudioID: f.studio.ID, ItemID: item.ID, Title: &blank})
	assert.True(t, httperr.IsBusiness(err, "missing_title"))
}

func TestChangeRetouchStatus(t *testing.T) {
	f := setup(t)
	item := f.create(t, nil)
	uc := NewChangeRetouchStatus(f.repo, nil, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, f.studio.ID, 1, item.ID, domain.TransitionInput{To: domain.StatusInProgress})
	assert.True(t, httperr.IsBusiness(err, "missing_selected_image"))

	_, err = uc.Execute(ctx, f.studio.ID, 1, item.ID, domain.TransitionInput{
		To: domain.StatusInProgress, SelectedImageURL: "/uploads/sel.jpg",
	})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, f.studio.ID, 1, item.ID, domain.TransitionInput{
		To: domain.StatusAwaitingApproval, RetouchImageURL: "/uploads/out.jpg",
	})
	require.NoError(t, err)

	got, err := uc.Execute(ctx, f.studio.ID, 1, item.ID, domain.TransitionInput{
		To: domain.StatusRevisionRequested, Note: "Chỉnh lại màu trời", Author: "Ngọc",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.RevisionCount)

	stored, err := f.repo.Get(ctx, f.studio.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "revision_requested", stored.Status)
	assert.Equal(t, "/uploads/sel.jpg", stored.SelectedImageURL)
	require.Len(t, stored.Notes, 3)
	assert.Equal(t, "Chờ khách duyệt → Cần chỉnh sửa. Chỉnh lại màu trời", stored.Notes[2].Content)
}

func TestAddRetouchNote(t *testing.T) {
	f := setup(t)
	item := f.create(t, nil)
	uc := NewAddRetouchNote(f.repo)

	_, err := uc.Execute(context.Background(), f.studio.ID, item.ID, "Hà", "")
	assert.True(t, httperr.IsBusiness(err, "missing_content"))

	_, err = uc.Execute(context.Background(), f.studio.ID, item.ID, "Hà", "Khách chọn 40 ảnh")
	require.NoError(t, err)

	v, err := NewGetRetouchItem(f.repo).Execute(context.Background(), f.studio.ID, item.ID)
	require.NoError(t, err)
	require.Len(t, v.Notes, 1)
	assert.Equal(t, []string{"in_progress"}, v.Next)
}

func TestListRetouchItems_Overdue(t *testing.T) {
	f := setup(t)
	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)
	late := f.create(t, &past)
	f.create(t, &future)
	f.create(t, nil)

	uc := NewListRetouchItems(f.repo)

	all, err := uc.Execute(context.Background(), f.studio.ID, domain.ListFilter{}, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, late.ID, all[0].ID)
	assert.True(t, all[0].Overdue)
	assert.Nil(t, all[2].Deadline)

	overdue, err := uc.Execute(context.Background(), f.studio.ID, domain.ListFilter{}, true)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, late.ID, overdue[0].ID)

	_, err = uc.Execute(context.Background(), f.studio.ID, domain.ListFilter{Status: "lost"}, false)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestUploadRetouchImage(t *testing.T) {
	f := setup(t)
	item := f.create(t, nil)

	dir := t.TempDir()
	store, err := storage.NewLocal(dir, "/uploads")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1600, 900))))

	uc := NewUploadRetouchImage(f.repo, store, nil)

	res, err := uc.Execute(context.Background(), f.studio.ID, 1, item.ID, SlotSelected, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1600, res.Width)
	assert.True(t, strings.HasPrefix(res.URL, "/uploads/retouch/"))
	assert.True(t, strings.HasSuffix(res.URL, ".png"))
	assert.True(t, strings.HasSuffix(res.PreviewURL, ".webp"))

	_, err = os.Stat(filepath.Join(dir, strings.TrimPrefix(res.PreviewURL, "/uploads/")))
	require.NoError(t, err)

	stored, err := f.repo.Get(context.Background(), f.studio.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, res.URL, stored.SelectedImageURL)

	_, err = uc.Execute(context.Background(), f.studio.ID, 1, item.ID, SlotRetouch, []byte("not an image"))
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))

	_, err = ParseSlot("cover")
	assert.True(t, httperr.IsBusiness(err, "invalid_slot"))
}
