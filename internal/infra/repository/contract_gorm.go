package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	"github.com/BruksfildServices01/studio-manager/internal/domain/retouch"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/search"
)

type ContractGormRepository struct {
	db *gorm.DB
}

func NewContractGormRepository(db *gorm.DB) *ContractGormRepository {
	return &ContractGormRepository{db: db}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *ContractGormRepository) GetCustomer(ctx context.Context, studioID, customerID uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", customerID, studioID).
		First(&c).Error; err != nil {
		return nil, notFound(err, "customer_not_found")
	}
	return &c, nil
}

func (r *ContractGormRepository) GetCatalogItem(ctx context.Context, studioID, itemID uint) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", itemID, studioID).
		First(&item).Error; err != nil {
		return nil, notFound(err, "catalog_item_not_found")
	}
	return &item, nil
}

// --------------------------------------------------
// Contract
// --------------------------------------------------

// Create inserts the contract with its service lines and first history entry
// and derives the code from the new id.
func (r *ContractGormRepository) Create(ctx context.Context, c *models.Contract, note *models.ContractNote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(c).Error; err != nil {
			return err
		}

		for i := range c.AdditionalServices {
			c.AdditionalServices[i].ContractID = c.ID
			if err := tx.Create(&c.AdditionalServices[i]).Error; err != nil {
				return err
			}
		}

		if note != nil {
			note.ContractID = c.ID
			if err := tx.Create(note).Error; err != nil {
				return err
			}
		}

		c.Code = contractCode(c)
		c.SearchKey = contractSearchKey(c)
		return tx.Model(c).Updates(map[string]any{
			"code":       c.Code,
			"search_key": c.SearchKey,
		}).Error
	})
}

func (r *ContractGormRepository) Get(ctx context.Context, studioID, contractID uint) (*models.Contract, error) {
	var c models.Contract
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Package").
		Preload("NoteHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("AdditionalServices", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("id = ? AND studio_id = ?", contractID, studioID).
		First(&c).Error; err != nil {
		return nil, notFound(err, "contract_not_found")
	}
	return &c, nil
}

func (r *ContractGormRepository) List(ctx context.Context, studioID uint, f domain.ListFilter) ([]models.Contract, error) {
	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Package").
		Where("studio_id = ?", studioID)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if like := search.Like(f.Query); like != "" {
		q = q.Where(search.LikeClause, like)
	}
	if f.WeddingFrom != nil {
		q = q.Where("wedding_date >= ?", f.WeddingFrom.UTC())
	}
	if f.WeddingTo != nil {
		q = q.Where("wedding_date < ?", f.WeddingTo.UTC())
	}

	var out []models.Contract
	if err := q.Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save writes the editable fields. paid_amount is owned by RecordPayment and
// is refreshed into c afterwards.
func (r *ContractGormRepository) Save(ctx context.Context, c *models.Contract) error {
	c.SearchKey = contractSearchKey(c)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateTotals(tx, c, map[string]any{
			"wedding_date": c.WeddingDate,
			"location":     c.Location,
			"discount":     c.Discount,
			"search_key":   c.SearchKey,
		}); err != nil {
			return err
		}
		return refreshPaid(tx, c)
	})
}

// --------------------------------------------------
// Workflow
// --------------------------------------------------

// Transition writes the workflow columns only if the stored status is still
// the one the move started from.
func (r *ContractGormRepository) Transition(ctx context.Context, c *models.Contract, note *models.ContractNote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Contract{}).
			Where("id = ? AND status = ?", c.ID, note.FromStatus).
			Updates(map[string]any{
				"status":        c.Status,
				"shoot_date":    c.ShootDate,
				"handover_date": c.HandoverDate,
				"cancel_reason": c.CancelReason,
				"scheduled_at":  c.ScheduledAt,
				"retouch_at":    c.RetouchAt,
				"handover_at":   c.HandoverAt,
				"completed_at":  c.CompletedAt,
				"cancelled_at":  c.CancelledAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("invalid_transition")
		}
		if err := refreshPaid(tx, c); err != nil {
			return err
		}
		if err := tx.Create(note).Error; err != nil {
			return err
		}

		if domain.Status(c.Status) != domain.StatusRetouch {
			return nil
		}

		var count int64
		if err := tx.Model(&models.RetouchItem{}).
			Where("contract_id = ?", c.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		item := &models.RetouchItem{
			StudioID:   c.StudioID,
			ContractID: c.ID,
			Title:      retouchTitle(c),
			Status:     string(retouch.InitialStatus()),
		}
		return tx.Omit(clause.Associations).Create(item).Error
	})
}

func (r *ContractGormRepository) AddNote(ctx context.Context, note *models.ContractNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// --------------------------------------------------
// Pricing
// --------------------------------------------------

func (r *ContractGormRepository) AddService(ctx context.Context, c *models.Contract, line *models.ContractService) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(line).Error; err != nil {
			return err
		}
		if err := updateTotals(tx, c, nil); err != nil {
			return err
		}
		return refreshPaid(tx, c)
	})
}

func (r *ContractGormRepository) RemoveService(ctx context.Context, c *models.Contract, lineID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND contract_id = ?", lineID, c.ID).Delete(&models.ContractService{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("service_line_not_found")
		}
		if err := updateTotals(tx, c, nil); err != nil {
			return err
		}
		return refreshPaid(tx, c)
	})
}

// --------------------------------------------------
// Payments
// --------------------------------------------------

func (r *ContractGormRepository) RecordPayment(ctx context.Context, c *models.Contract, t *models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// bound re-checked against the stored total
		amount := t.Amount
		res := tx.Model(&models.Contract{}).
			Where("id = ? AND paid_amount + ? <= total_amount", c.ID, amount).
			Update("paid_amount", gorm.Expr("paid_amount + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("overpayment")
		}

		t.Date = t.Date.UTC()
		if err := tx.Create(t).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness("already_recorded")
			}
			return err
		}

		return refreshPaid(tx, c)
	})
}

func (r *ContractGormRepository) HasExternalPayment(ctx context.Context, ref string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("external_ref = ?", ref).
		Count(&count).Error
	return count > 0, err
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

// updateTotals writes the total along with extra columns, refusing a total
// below the stored paid amount.
func updateTotals(tx *gorm.DB, c *models.Contract, cols map[string]any) error {
	values := map[string]any{"total_amount": c.TotalAmount}
	for k, v := range cols {
		values[k] = v
	}

	res := tx.Model(&models.Contract{}).
		Where("id = ? AND paid_amount <= ?", c.ID, c.TotalAmount).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("total_below_paid")
	}
	return nil
}

func refreshPaid(tx *gorm.DB, c *models.Contract) error {
	return tx.Model(&models.Contract{}).
		Select("paid_amount").
		Where("id = ?", c.ID).
		Scan(&c.PaidAmount).Error
}

func contractCode(c *models.Contract) string {
	return fmt.Sprintf("HD%d-%04d", c.CreatedAt.Year(), c.ID)
}

func contractSearchKey(c *models.Contract) string {
	return search.Key(c.Code, c.Customer.Name, c.Customer.Phone, c.Location)
}

func retouchTitle(c *models.Contract) string {
	if c.Customer.Name != "" {
		return "Album " + c.Customer.Name
	}
	return "Album " + c.Code
}

// Compile-time check
var _ domain.Repository = (*ContractGormRepository)(nil)
