package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/catalog"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/search"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) List(ctx context.Context, studioID uint, f domain.ListFilter) ([]models.CatalogItem, error) {
	q := r.db.WithContext(ctx).Where("studio_id = ?", studioID)

	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}
	if like := search.Like(f.Query); like != "" {
		q = q.Where(search.LikeClause, like)
	}

	var out []models.CatalogItem
	if err := q.Order("kind DESC, price ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) Get(ctx context.Context, studioID, itemID uint) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", itemID, studioID).
		First(&item).Error; err != nil {
		return nil, notFound(err, "catalog_item_not_found")
	}
	return &item, nil
}

// Create inserts then writes active explicitly, since the column default
// would swallow a false value.
func (r *CatalogGormRepository) Create(ctx context.Context, item *models.CatalogItem) error {
	item.SearchKey = catalogSearchKey(item)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		active := item.Active
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		if active {
			return nil
		}
		item.Active = false
		return tx.Model(item).Update("active", false).Error
	})
}

func (r *CatalogGormRepository) Save(ctx context.Context, item *models.CatalogItem) error {
	item.SearchKey = catalogSearchKey(item)
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete refuses items referenced by any contract; deactivate those
// instead.
func (r *CatalogGormRepository) Delete(ctx context.Context, studioID, itemID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var used int64
		if err := tx.Model(&models.Contract{}).
			Where("studio_id = ?", studioID).
			Where("package_id = ? OR id IN (?)", itemID,
				tx.Model(&models.ContractService{}).Select("contract_id").Where("service_id = ?", itemID)).
			Count(&used).Error; err != nil {
			return err
		}
		if used > 0 {
			return httperr.ErrBusiness("catalog_item_in_use")
		}

		res := tx.Where("id = ? AND studio_id = ?", itemID, studioID).Delete(&models.CatalogItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("catalog_item_not_found")
		}
		return nil
	})
}

func (r *CatalogGormRepository) ContractsUsing(ctx context.Context, studioID uint, itemIDs []uint) ([]models.Contract, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	lines := r.db.Model(&models.ContractService{}).
		Select("contract_id").
		Where("service_id IN ?", itemIDs)

	var out []models.Contract
	err := r.db.WithContext(ctx).
		Preload("AdditionalServices").
		Where("studio_id = ?", studioID).
		Where("package_id IN ? OR id IN (?)", itemIDs, lines).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func catalogSearchKey(item *models.CatalogItem) string {
	return search.Key(item.Name, item.Category, item.Description)
}

// Compile-time check
var _ domain.Repository = (*CatalogGormRepository)(nil)
