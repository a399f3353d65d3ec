package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/customer"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/search"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) Get(ctx context.Context, studioID, customerID uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("id = ? AND studio_id = ?", customerID, studioID).
		First(&c).Error; err != nil {
		return nil, notFound(err, "customer_not_found")
	}
	return &c, nil
}

func (r *CustomerGormRepository) List(ctx context.Context, studioID uint, f domain.ListFilter) ([]models.Customer, error) {
	q := r.db.WithContext(ctx).Where("studio_id = ?", studioID)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if like := search.Like(f.Query); like != "" {
		q = q.Where(search.LikeClause, like)
	}

	var out []models.Customer
	if err := q.Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CustomerGormRepository) PhoneTaken(ctx context.Context, studioID uint, phone string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("studio_id = ? AND phone = ? AND id <> ?", studioID, phone, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *CustomerGormRepository) Create(ctx context.Context, c *models.Customer) error {
	c.SearchKey = customerSearchKey(c)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrBusiness("customer_exists")
		}
		return err
	}
	return nil
}

func (r *CustomerGormRepository) Save(ctx context.Context, c *models.Customer) error {
	c.SearchKey = customerSearchKey(c)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrBusiness("customer_exists")
		}
		return err
	}
	return nil
}

// Delete refuses customers that still have contracts; notes go with the
// customer.
func (r *CustomerGormRepository) Delete(ctx context.Context, studioID, customerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Contract{}).
			Where("studio_id = ? AND customer_id = ?", studioID, customerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("customer_has_contracts")
		}

		if err := tx.Where("customer_id = ?", customerID).Delete(&models.CustomerNote{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND studio_id = ?", customerID, studioID).Delete(&models.Customer{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("customer_not_found")
		}
		return nil
	})
}

func (r *CustomerGormRepository) AddNote(ctx context.Context, note *models.CustomerNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// SaveSummary writes only the summary columns.
func (r *CustomerGormRepository) SaveSummary(ctx context.Context, c *models.Customer) error {
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"notes_summary":      c.NotesSummary,
			"summary_updated_at": c.SummaryUpdatedAt,
		}).Error
}

func customerSearchKey(c *models.Customer) string {
	return search.Key(c.Name, c.Phone, c.Email)
}

// Compile-time check
var _ domain.Repository = (*CustomerGormRepository)(nil)
