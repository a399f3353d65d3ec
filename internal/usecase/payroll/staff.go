package payroll

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	"github.com/BruksfildServices01/studio-manager/internal/domain/customer"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/payroll"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

const (
	StaffActive   = "active"
	StaffInactive = "inactive"
)

type StaffInput struct {
	Name                string `json:"name"`
	Position            string `json:"position"`
	Phone               string `json:"phone"`
	BaseSalary          int64  `json:"base_salary"`
	HourlyRate          int64  `json:"hourly_rate"`
	WorkingDaysPerMonth int    `json:"working_days_per_month"`
	Status              string `json:"status"`
}

func (in StaffInput) apply(s *models.StaffMember) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return httperr.ErrBusiness("missing_name")
	}
	if in.BaseSalary < 0 || in.HourlyRate < 0 {
		return httperr.ErrBusiness("invalid_amount")
	}

	status := strings.ToLower(strings.TrimSpace(in.Status))
	switch status {
	case "":
		status = StaffActive
	case StaffActive, StaffInactive:
	default:
		return httperr.ErrBusiness("invalid_status")
	}

	phone := ""
	if strings.TrimSpace(in.Phone) != "" {
		p, err := customer.NormalizePhone(in.Phone)
		if err != nil {
			return err
		}
		phone = p
	}

	days := in.WorkingDaysPerMonth
	if days <= 0 {
		days = domain.DefaultWorkingDays
	}

	s.Name = name
	s.Position = strings.TrimSpace(in.Position)
	s.Phone = phone
	s.BaseSalary = in.BaseSalary
	s.HourlyRate = in.HourlyRate
	s.WorkingDaysPerMonth = days
	s.Status = status
	return nil
}

type ManageStaff struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewManageStaff(repo domain.Repository, audit *audit.Dispatcher) *ManageStaff {
	return &ManageStaff{repo: repo, audit: audit}
}

func (uc *ManageStaff) List(ctx context.Context, studioID uint, status string) ([]models.StaffMember, error) {
	if status != "" && status != StaffActive && status != StaffInactive {
		return nil, httperr.ErrBusiness("invalid_status")
	}
	return uc.repo.ListStaff(ctx, studioID, status)
}

func (uc *ManageStaff) Get(ctx context.Context, studioID, staffID uint) (*models.StaffMember, error) {
	return uc.repo.GetStaff(ctx, studioID, staffID)
}

func (uc *ManageStaff) Create(ctx context.Context, studioID, userID uint, in StaffInput) (*models.StaffMember, error) {
	s := &models.StaffMember{StudioID: studioID}
	if err := in.apply(s); err != nil {
		return nil, err
	}
	if err := uc.repo.CreateStaff(ctx, s); err != nil {
		return nil, err
	}
	uc.dispatch(studioID, userID, "staff_created", s.ID)
	return s, nil
}

func (uc *ManageStaff) Update(ctx context.Context, studioID, userID, staffID uint, in StaffInput) (*models.StaffMember, error) {
	s, err := uc.repo.GetStaff(ctx, studioID, staffID)
	if err != nil {
		return nil, err
	}
	if err := in.apply(s); err != nil {
		return nil, err
	}
	if err := uc.repo.SaveStaff(ctx, s); err != nil {
		return nil, err
	}
	uc.dispatch(studioID, userID, "staff_updated", s.ID)
	return s, nil
}

func (uc *ManageStaff) Delete(ctx context.Context, studioID, userID, staffID uint) error {
	if err := uc.repo.DeleteStaff(ctx, studioID, staffID); err != nil {
		return err
	}
	uc.dispatch(studioID, userID, "staff_deleted", staffID)
	return nil
}

func (uc *ManageStaff) dispatch(studioID, userID uint, action string, staffID uint) {
	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &userID,
		Action:   action,
		Entity:   "staff_member",
		EntityID: &staffID,
	})
}
