package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-manager/internal/domain/accounting"
	"github.com/BruksfildServices01/studio-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/dashboard"
	"github.com/BruksfildServices01/studio-manager/internal/domain/retouch"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

func (r *DashboardGormRepository) GetStudioByID(ctx context.Context, studioID uint) (*models.Studio, error) {
	return getStudio(ctx, r.db, studioID)
}

type statusCount struct {
	Status string
	Count  int64
}

func (r *DashboardGormRepository) Overview(ctx context.Context, studioID uint, w domain.Window) (*domain.Overview, error) {
	db := r.db.WithContext(ctx)
	out := &domain.Overview{GeneratedAt: w.Now.UTC()}

	var err error
	if out.CustomersByStatus, err = countByStatus(db.Model(&models.Customer{}), studioID); err != nil {
		return nil, err
	}
	if out.ContractsByStatus, err = countByStatus(db.Model(&models.Contract{}), studioID); err != nil {
		return nil, err
	}

	blocking := appointment.BlockingStatuses()
	if err := db.Model(&models.Appointment{}).
		Where("studio_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			studioID, blocking, w.TodayStart.UTC(), w.TodayEnd.UTC()).
		Count(&out.AppointmentsToday).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Appointment{}).
		Where("studio_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			studioID, blocking, w.Now.UTC(), w.WeekEnd.UTC()).
		Count(&out.AppointmentsUpcoming).Error; err != nil {
		return nil, err
	}

	done := string(retouch.StatusCompleted)
	if err := db.Model(&models.RetouchItem{}).
		Where("studio_id = ? AND status <> ?", studioID, done).
		Count(&out.RetouchOpen).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.RetouchItem{}).
		Where("studio_id = ? AND status <> ? AND deadline IS NOT NULL AND deadline < ?",
			studioID, done, w.Now.UTC()).
		Count(&out.RetouchOverdue).Error; err != nil {
		return nil, err
	}

	var sums []struct {
		Type  string
		Total int64
	}
	if err := db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("studio_id = ? AND status = ? AND date >= ? AND date < ?",
			studioID, string(accounting.StatusCompleted), w.MonthStart.UTC(), w.MonthEnd.UTC()).
		Group("type").
		Scan(&sums).Error; err != nil {
		return nil, err
	}
	for _, s := range sums {
		switch accounting.Type(s.Type) {
		case accounting.TypeIncome:
			out.Month.Income = s.Total
		case accounting.TypeExpense:
			out.Month.Expense = s.Total
		}
	}
	out.Month.Profit = out.Month.Income - out.Month.Expense

	if err := db.Model(&models.Contract{}).
		Select("COALESCE(SUM(total_amount - paid_amount), 0)").
		Where("studio_id = ? AND status <> ? AND total_amount > paid_amount",
			studioID, string(contract.StatusCancelled)).
		Scan(&out.Outstanding).Error; err != nil {
		return nil, err
	}

	return out, nil
}

func countByStatus(q *gorm.DB, studioID uint) (map[string]int64, error) {
	var rows []statusCount
	if err := q.Select("status, COUNT(*) AS count").
		Where("studio_id = ?", studioID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*DashboardGormRepository)(nil)
