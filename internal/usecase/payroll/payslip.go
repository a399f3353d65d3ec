package payroll

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/payroll"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type StudioPayroll struct {
	Year     int              `json:"year"`
	Month    int              `json:"month"`
	Payslips []domain.Payslip `json:"payslips"`
	Totals   domain.Totals    `json:"totals"`
}

type CalculatePayroll struct {
	repo domain.Repository
}

func NewCalculatePayroll(repo domain.Repository) *CalculatePayroll {
	return &CalculatePayroll{repo: repo}
}

func (uc *CalculatePayroll) ForStaff(ctx context.Context, studioID, staffID uint, year int, month time.Month) (*domain.Payslip, error) {
	if err := validMonth(year, month); err != nil {
		return nil, err
	}

	staff, err := uc.repo.GetStaff(ctx, studioID, staffID)
	if err != nil {
		return nil, err
	}

	p := domain.MonthPeriod(year, month)
	attendance, err := uc.repo.ListAttendance(ctx, studioID, staff.ID, p)
	if err != nil {
		return nil, err
	}
	rewards, err := uc.repo.ListRewards(ctx, studioID, staff.ID, p)
	if err != nil {
		return nil, err
	}

	slip := domain.Calculate(*staff, year, month, attendance, rewards)
	return &slip, nil
}

// ForStudio computes every active member's payslip plus the totals.
func (uc *CalculatePayroll) ForStudio(ctx context.Context, studioID uint, year int, month time.Month) (*StudioPayroll, error) {
	if err := validMonth(year, month); err != nil {
		return nil, err
	}

	staff, err := uc.repo.ListStaff(ctx, studioID, StaffActive)
	if err != nil {
		return nil, err
	}

	p := domain.MonthPeriod(year, month)
	attendance, err := uc.repo.ListAttendance(ctx, studioID, 0, p)
	if err != nil {
		return nil, err
	}
	rewards, err := uc.repo.ListRewards(ctx, studioID, 0, p)
	if err != nil {
		return nil, err
	}

	slips := make([]domain.Payslip, 0, len(staff))
	for _, s := range staff {
		slips = append(slips, domain.Calculate(s, year, month, byStaff(attendance, s.ID), rewardsOf(rewards, s.ID)))
	}

	return &StudioPayroll{
		Year:     year,
		Month:    int(month),
		Payslips: slips,
		Totals:   domain.Sum(slips),
	}, nil
}

func byStaff(rows []models.Attendance, id uint) []models.Attendance {
	var out []models.Attendance
	for _, a := range rows {
		if a.StaffMemberID == id {
			out = append(out, a)
		}
	}
	return out
}

func rewardsOf(rows []models.Reward, id uint) []models.Reward {
	var out []models.Reward
	for _, r := range rows {
		if r.StaffMemberID == id {
			out = append(out, r)
		}
	}
	return out
}
