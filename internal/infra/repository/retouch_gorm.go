package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/retouch"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type RetouchGormRepository struct {
	db *gorm.DB
}

func NewRetouchGormRepository(db *gorm.DB) *RetouchGormRepository {
	return &RetouchGormRepository{db: db}
}

func (r *RetouchGormRepository) GetContract(ctx context.Context, studioID, contractID uint) (*models.Contract, error) {
	var c models.Contract
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("id = ? AND studio_id = ?", contractID, studioID).
		First(&c).Error; err != nil {
		return nil, notFound(err, "contract_not_found")
	}
	return &c, nil
}

func (r *RetouchGormRepository) GetStaffMember(ctx context.Context, studioID, staffID uint) (*models.StaffMember, error) {
	return getStaffMember(ctx, r.db, studioID, staffID)
}

func (r *RetouchGormRepository) Create(ctx context.Context, item *models.RetouchItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *RetouchGormRepository) Get(ctx context.Context, studioID, itemID uint) (*models.RetouchItem, error) {
	var item models.RetouchItem
	if err := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("id = ? AND studio_id = ?", itemID, studioID).
		First(&item).Error; err != nil {
		return nil, notFound(err, "retouch_item_not_found")
	}
	return &item, nil
}

func (r *RetouchGormRepository) List(ctx context.Context, studioID uint, f domain.ListFilter) ([]models.RetouchItem, error) {
	q := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("studio_id = ?", studioID)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ContractID != 0 {
		q = q.Where("contract_id = ?", f.ContractID)
	}
	if f.AssigneeID != 0 {
		q = q.Where("assignee_id = ?", f.AssigneeID)
	}
	if f.OverdueAt != nil {
		q = q.Where("deadline IS NOT NULL AND deadline < ? AND status <> ?",
			f.OverdueAt.UTC(), string(domain.StatusCompleted))
	}

	var out []models.RetouchItem
	err := q.Order("CASE WHEN deadline IS NULL THEN 1 ELSE 0 END, deadline ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RetouchGormRepository) Save(ctx context.Context, item *models.RetouchItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

func (r *RetouchGormRepository) SaveWithNote(ctx context.Context, item *models.RetouchItem, note *models.RetouchNote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(item).Error; err != nil {
			return err
		}
		return tx.Create(note).Error
	})
}

func (r *RetouchGormRepository) AddNote(ctx context.Context, note *models.RetouchNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// Compile-time check
var _ domain.Repository = (*RetouchGormRepository)(nil)
