package payroll

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/payroll"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type AttendanceInput struct {
	StaffMemberID uint    `json:"staff_member_id"`
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type RewardInput struct {
	StaffMemberID uint   `json:"staff_member_id"`
	Date          string `json:"date"`
	Kind          string `json:"kind"`
	Amount        int64  `json:"amount"`
	Reason        string `json:"reason"`
}

type RecordAttendance struct {
	repo domain.Repository
}

func NewRecordAttendance(repo domain.Repository) *RecordAttendance {
	return &RecordAttendance{repo: repo}
}

// Record stores the day for the member, replacing any earlier entry for
// the same date.
func (uc *RecordAttendance) Record(ctx context.Context, studioID uint, in AttendanceInput) (*models.Attendance, error) {
	status, err := domain.ParseAttendanceStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if in.OvertimeHours < 0 || in.OvertimeHours > 24 {
		return nil, httperr.ErrBusiness("invalid_overtime")
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	staff, err := uc.repo.GetStaff(ctx, studioID, in.StaffMemberID)
	if err != nil {
		return nil, err
	}

	a := &models.Attendance{
		StaffMemberID: staff.ID,
		Date:          date,
		Status:        string(status),
		OvertimeHours: in.OvertimeHours,
	}
	if err := uc.repo.UpsertAttendance(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns attendance for the month; staffID 0 lists every member.
func (uc *RecordAttendance) List(ctx context.Context, studioID, staffID uint, year int, month time.Month) ([]models.Attendance, error) {
	if err := validMonth(year, month); err != nil {
		return nil, err
	}
	return uc.repo.ListAttendance(ctx, studioID, staffID, domain.MonthPeriod(year, month))
}

func (uc *RecordAttendance) AddReward(ctx context.Context, studioID uint, in RewardInput) (*models.Reward, error) {
	kind, err := domain.ParseRewardKind(in.Kind)
	if err != nil {
		return nil, err
	}
	if in.Amount <= 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	staff, err := uc.repo.GetStaff(ctx, studioID, in.StaffMemberID)
	if err != nil {
		return nil, err
	}

	r := &models.Reward{
		StaffMemberID: staff.ID,
		Date:          date,
		Kind:          string(kind),
		Amount:        in.Amount,
		Reason:        strings.TrimSpace(in.Reason),
	}
	if err := uc.repo.CreateReward(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (uc *RecordAttendance) ListRewards(ctx context.Context, studioID, staffID uint, year int, month time.Month) ([]models.Reward, error) {
	if err := validMonth(year, month); err != nil {
		return nil, err
	}
	return uc.repo.ListRewards(ctx, studioID, staffID, domain.MonthPeriod(year, month))
}

func (uc *RecordAttendance) DeleteReward(ctx context.Context, studioID, rewardID uint) error {
	return uc.repo.DeleteReward(ctx, studioID, rewardID)
}

func parseDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, httperr.ErrBusiness("missing_date")
	}
	d, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return d, nil
}

func validMonth(year int, month time.Month) error {
	if year < 2000 || year > 2100 || month < time.January || month > time.December {
		return httperr.ErrBusiness("invalid_period")
	}
	return nil
}
