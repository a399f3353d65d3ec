package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Studio
// --------------------------------------------------

func (r *AppointmentGormRepository) GetStudioByID(
	ctx context.Context,
	id uint,
) (*models.Studio, error) {
	return getStudio(ctx, r.db, id)
}

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	studioID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("studio_id = ? AND weekday = ?", studioID, weekday).
		First(&wh).Error; err != nil {
		return nil, notFound(err, "working_hours_not_found")
	}
	return &wh, nil
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *AppointmentGormRepository) GetStaffMember(
	ctx context.Context,
	studioID uint,
	staffID uint,
) (*models.StaffMember, error) {
	return getStaffMember(ctx, r.db, studioID, staffID)
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	ap.StartTime = ap.StartTime.UTC()
	ap.EndTime = ap.EndTime.UTC()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ap.StaffMemberID != nil {
			q := tx.Model(&models.Appointment{})
			if tx.Dialector.Name() == "postgres" {
				q = q.Clauses(clause.Locking{Strength: "UPDATE"})
			}

			var count int64
			if err := q.
				Where(
					"staff_member_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
					*ap.StaffMemberID,
					domain.BlockingStatuses(),
					ap.EndTime,
					ap.StartTime,
				).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return httperr.ErrBusiness("time_conflict")
			}
		}

		return tx.Create(ap).Error
	})
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	studioID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("StaffMember").
		Where("id = ? AND studio_id = ?", appointmentID, studioID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, "appointment_not_found")
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBusy(
	ctx context.Context,
	studioID uint,
	staffID *uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time").
		Where(
			"studio_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			studioID, domain.BlockingStatuses(), end.UTC(), start.UTC(),
		)
	if staffID != nil {
		q = q.Where("staff_member_id = ?", *staffID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	studioID uint,
	start time.Time,
	end time.Time,
	statuses []string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("StaffMember").
		Where(
			"studio_id = ? AND start_time >= ? AND start_time < ?",
			studioID, start.UTC(), end.UTC(),
		)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListDueReminders(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Where(
			"status IN ? AND reminded_at IS NULL AND phone <> '' AND start_time >= ? AND start_time < ?",
			domain.BlockingStatuses(), start.UTC(), end.UTC(),
		).
		Order("start_time ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CreateReminderLog(
	ctx context.Context,
	entry *models.ReminderLog,
) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
