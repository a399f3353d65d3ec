package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/accounting"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/search"
)

type TransactionGormRepository struct {
	db *gorm.DB
}

func NewTransactionGormRepository(db *gorm.DB) *TransactionGormRepository {
	return &TransactionGormRepository{db: db}
}

func (r *TransactionGormRepository) GetStudioByID(ctx context.Context, studioID uint) (*models.Studio, error) {
	return getStudio(ctx, r.db, studioID)
}

func (r *TransactionGormRepository) List(ctx context.Context, studioID uint, f domain.ListFilter) ([]models.Transaction, error) {
	q := r.db.WithContext(ctx).Where("studio_id = ?", studioID)

	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("date >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("date < ?", f.To.UTC())
	}
	if like := search.Like(f.Query); like != "" {
		q = q.Where(search.LikeClause, like)
	}

	var out []models.Transaction
	if err := q.Order("date DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TransactionGormRepository) Get(ctx context.Context, studioID, txID uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", txID, studioID).
		First(&t).Error; err != nil {
		return nil, notFound(err, "transaction_not_found")
	}
	return &t, nil
}

func (r *TransactionGormRepository) Create(ctx context.Context, t *models.Transaction) error {
	t.Date = t.Date.UTC()
	t.SearchKey = domain.SearchKey(t)
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error
}

func (r *TransactionGormRepository) Save(ctx context.Context, t *models.Transaction) error {
	t.Date = t.Date.UTC()
	t.SearchKey = domain.SearchKey(t)
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(t).Error
}

func (r *TransactionGormRepository) Delete(ctx context.Context, studioID, txID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", txID, studioID).
		Delete(&models.Transaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("transaction_not_found")
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*TransactionGormRepository)(nil)
