package payroll

import (
	"context"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/models"
)

// Period is the half-open range [From, To) of calendar dates.
type Period struct {
	From time.Time
	To   time.Time
}

// MonthPeriod returns the dates of month in UTC midnights, the form
// attendance and rewards are stored in.
func MonthPeriod(year int, month time.Month) Period {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{From: from, To: from.AddDate(0, 1, 0)}
}

// DateOnly truncates t to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type Repository interface {
	ListStaff(ctx context.Context, studioID uint, status string) ([]models.StaffMember, error)
	GetStaff(ctx context.Context, studioID, staffID uint) (*models.StaffMember, error)
	CreateStaff(ctx context.Context, s *models.StaffMember) error
	SaveStaff(ctx context.Context, s *models.StaffMember) error
	DeleteStaff(ctx context.Context, studioID, staffID uint) error

	UpsertAttendance(ctx context.Context, a *models.Attendance) error
	ListAttendance(ctx context.Context, studioID, staffID uint, p Period) ([]models.Attendance, error)

	CreateReward(ctx context.Context, r *models.Reward) error
	DeleteReward(ctx context.Context, studioID, rewardID uint) error
	ListRewards(ctx context.Context, studioID, staffID uint, p Period) ([]models.Reward, error)
}
