package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/payroll"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type PayrollGormRepository struct {
	db *gorm.DB
}

func NewPayrollGormRepository(db *gorm.DB) *PayrollGormRepository {
	return &PayrollGormRepository{db: db}
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *PayrollGormRepository) ListStaff(ctx context.Context, studioID uint, status string) ([]models.StaffMember, error) {
	q := r.db.WithContext(ctx).Where("studio_id = ?", studioID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []models.StaffMember
	if err := q.Order("name ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PayrollGormRepository) GetStaff(ctx context.Context, studioID, staffID uint) (*models.StaffMember, error) {
	return getStaffMember(ctx, r.db, studioID, staffID)
}

func (r *PayrollGormRepository) CreateStaff(ctx context.Context, s *models.StaffMember) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *PayrollGormRepository) SaveStaff(ctx context.Context, s *models.StaffMember) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// DeleteStaff drops attendance and rewards and unassigns the member from
// appointments and retouch items.
func (r *PayrollGormRepository) DeleteStaff(ctx context.Context, studioID, staffID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getStaffMember(ctx, tx, studioID, staffID); err != nil {
			return err
		}

		if err := tx.Where("staff_member_id = ?", staffID).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("staff_member_id = ?", staffID).Delete(&models.Reward{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Appointment{}).
			Where("staff_member_id = ?", staffID).
			Update("staff_member_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.RetouchItem{}).
			Where("assignee_id = ?", staffID).
			Update("assignee_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.StaffMember{}, staffID).Error
	})
}

// --------------------------------------------------
// Attendance
// --------------------------------------------------

// UpsertAttendance keeps one row per staff member and date.
func (r *PayrollGormRepository) UpsertAttendance(ctx context.Context, a *models.Attendance) error {
	a.Date = domain.DateOnly(a.Date)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "staff_member_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "overtime_hours", "updated_at"}),
		}).
		Create(a).Error
}

func (r *PayrollGormRepository) ListAttendance(ctx context.Context, studioID, staffID uint, p domain.Period) ([]models.Attendance, error) {
	var out []models.Attendance
	err := r.scoped(ctx, studioID, staffID, p).
		Order("date ASC, staff_member_id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Rewards
// --------------------------------------------------

func (r *PayrollGormRepository) CreateReward(ctx context.Context, rw *models.Reward) error {
	rw.Date = domain.DateOnly(rw.Date)
	return r.db.WithContext(ctx).Create(rw).Error
}

func (r *PayrollGormRepository) DeleteReward(ctx context.Context, studioID, rewardID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND staff_member_id IN (?)", rewardID, staffIDs(r.db, studioID)).
		Delete(&models.Reward{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("reward_not_found")
	}
	return nil
}

func (r *PayrollGormRepository) ListRewards(ctx context.Context, studioID, staffID uint, p domain.Period) ([]models.Reward, error) {
	var out []models.Reward
	err := r.scoped(ctx, studioID, staffID, p).
		Order("date ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

// scoped limits attendance and reward rows to the studio's staff and the
// period; staffID 0 means every member.
func (r *PayrollGormRepository) scoped(ctx context.Context, studioID, staffID uint, p domain.Period) *gorm.DB {
	q := r.db.WithContext(ctx).
		Where("staff_member_id IN (?)", staffIDs(r.db, studioID)).
		Where("date >= ? AND date < ?", p.From, p.To)
	if staffID != 0 {
		q = q.Where("staff_member_id = ?", staffID)
	}
	return q
}

func staffIDs(db *gorm.DB, studioID uint) *gorm.DB {
	return db.Model(&models.StaffMember{}).Select("id").Where("studio_id = ?", studioID)
}

// Compile-time check
var _ domain.Repository = (*PayrollGormRepository)(nil)
