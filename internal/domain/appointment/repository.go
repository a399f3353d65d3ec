package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type Repository interface {
	// -------- Studio --------
	GetStudioByID(
		ctx context.Context,
		id uint,
	) (*models.Studio, error)

	GetWorkingHours(
		ctx context.Context,
		studioID uint,
		weekday int,
	) (*models.WorkingHours, error)

	// -------- Staff --------
	GetStaffMember(
		ctx context.Context,
		studioID uint,
		staffID uint,
	) (*models.StaffMember, error)

	// -------- Appointment (create / conflict) --------
	// CreateAppointment runs the overlap check and the insert atomically.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		studioID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListBusy(
		ctx context.Context,
		studioID uint,
		staffID *uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		studioID uint,
		start time.Time,
		end time.Time,
		statuses []string,
	) ([]models.Appointment, error)

	ListDueReminders(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Reminders --------
	CreateReminderLog(
		ctx context.Context,
		entry *models.ReminderLog,
	) error
}
