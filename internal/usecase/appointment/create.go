package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-manager/internal/domain/customer"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

const defaultMinAdvanceMinutes = 120

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	StudioID uint
	UserID   uint

	CoupleName string
	Phone      string

	CustomerID    *uint
	ContractID    *uint
	StaffMemberID *uint

	Kind        string
	Date        string
	Time        string
	DurationMin int
	Location    string
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Required fields
	// --------------------------------------------------
	coupleName := strings.TrimSpace(in.CoupleName)
	if coupleName == "" {
		return nil, httperr.ErrBusiness("missing_couple_name")
	}
	if strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Time) == "" {
		return nil, httperr.ErrBusiness("missing_date_or_time")
	}

	phone := strings.TrimSpace(in.Phone)
	if phone != "" {
		normalized, err := customer.NormalizePhone(phone)
		if err != nil {
			return nil, err
		}
		phone = normalized
	}

	kind, err := domain.ParseKind(in.Kind)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Studio and local time
	// --------------------------------------------------
	studio, err := uc.repo.GetStudioByID(ctx, in.StudioID)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		strings.TrimSpace(in.Date)+" "+strings.TrimSpace(in.Time),
		timezone.Location(studio.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	duration := domain.DefaultDuration(kind)
	if in.DurationMin > 0 {
		duration = time.Duration(in.DurationMin) * time.Minute
	}
	end := start.Add(duration)

	// --------------------------------------------------
	// 3. Minimum advance
	// --------------------------------------------------
	minAdvance := studio.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = defaultMinAdvanceMinutes
	}

	now := timezone.NowIn(studio.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4. Working hours + lunch
	// --------------------------------------------------
	var wh *models.WorkingHours
	if !domain.OnLocation(kind) {
		wh, err = uc.repo.GetWorkingHours(ctx, in.StudioID, int(start.Weekday()))
		if err != nil && !httperr.IsBusiness(err, "working_hours_not_found") {
			return nil, err
		}
	}
	if !domain.IsWithinWorkingHours(domain.HoursFor(kind, wh), start, end) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// 5. Staff
	// --------------------------------------------------
	if in.StaffMemberID != nil {
		staff, err := uc.repo.GetStaffMember(ctx, in.StudioID, *in.StaffMemberID)
		if err != nil {
			return nil, err
		}
		if staff.Status != "active" {
			return nil, httperr.ErrBusiness("staff_inactive")
		}
	}

	// --------------------------------------------------
	// 6. Insert (overlap checked atomically)
	// --------------------------------------------------
	ap := &models.Appointment{
		StudioID:      in.StudioID,
		CoupleName:    coupleName,
		Phone:         phone,
		CustomerID:    in.CustomerID,
		ContractID:    in.ContractID,
		StaffMemberID: in.StaffMemberID,
		Kind:          string(kind),
		Location:      strings.TrimSpace(in.Location),
		StartTime:     start,
		EndTime:       end,
		Status:        string(domain.InitialStatus()),
		Notes:         strings.TrimSpace(in.Notes),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Audit (UserID 0 is a request from the public booking page)
	// --------------------------------------------------
	var actor *uint
	if in.UserID != 0 {
		actor = &in.UserID
	}
	uc.audit.Dispatch(audit.Event{
		StudioID: in.StudioID,
		UserID:   actor,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"kind": ap.Kind, "start": start.Format(time.RFC3339)},
	})

	return ap, nil
}
